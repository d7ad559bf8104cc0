package sim

import (
	"time"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

// Metric summarizes a trace one step at a time.
type Metric interface {
	Name() string
	Observe(step trace.Step)
	Value() float64
	Reset()
}

// Observer is told about every playback transition.
type Observer interface {
	OnStep(st playback.Status)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(st playback.Status)

func (f ObserverFunc) OnStep(st playback.Status) { f(st) }

// Result is one generated trace together with its input and statistics.
type Result struct {
	Algorithm string
	Input     input.Input
	Trace     *trace.Trace
	Metrics   map[string]float64
	Elapsed   time.Duration
}

// Evaluate resets ms and feeds them every step of t.
func Evaluate(t *trace.Trace, ms []Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < t.Len(); i++ {
		s := t.At(i)
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
