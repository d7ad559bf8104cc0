package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "algoviz"

// Collector exports generation and playback activity as Prometheus metrics
// on its own registry. A nil *Collector discards everything.
type Collector struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	steps       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rejected    prometheus.Counter
	transitions *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Traces generated, by algorithm.",
		}, []string{"algorithm"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_generated_total",
			Help:      "Steps recorded across all generated traces, by algorithm.",
		}, []string{"algorithm"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_seconds",
			Help:      "Time spent generating one trace.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"algorithm"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_rejected_total",
			Help:      "Raw inputs that normalized to nothing usable.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_transitions_total",
			Help:      "Playback state changes, by resulting mode.",
		}, []string{"mode"}),
	}
	c.registry.MustRegister(c.generations, c.steps, c.duration, c.rejected, c.transitions)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) ObserveGeneration(algorithm string, steps int, d time.Duration) {
	if c == nil {
		return
	}
	c.generations.WithLabelValues(algorithm).Inc()
	c.steps.WithLabelValues(algorithm).Add(float64(steps))
	c.duration.WithLabelValues(algorithm).Observe(d.Seconds())
}

func (c *Collector) ObserveRejected() {
	if c == nil {
		return
	}
	c.rejected.Inc()
}

func (c *Collector) ObserveTransition(mode string) {
	if c == nil {
		return
	}
	c.transitions.WithLabelValues(mode).Inc()
}

// Snapshot flattens counters and histogram sample counts into
// name{labels} -> value.
func (c *Collector) Snapshot() (map[string]float64, error) {
	if c == nil {
		return nil, nil
	}
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
