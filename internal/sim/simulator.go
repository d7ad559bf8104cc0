// Package sim ties the input normalizer, a trace generator and a playback
// controller together. A Simulator owns exactly one controller; loading new
// input regenerates the trace and resets playback in one call.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/view"
)

type Simulator struct {
	gen       algorithms.Generator
	norm      input.Normalizer
	ctrl      *playback.Controller
	logger    *slog.Logger
	collector *metrics.Collector
	interval  time.Duration
	sched     playback.Scheduler

	// genMu serializes SetInput so metrics are never fed two traces at once.
	genMu     sync.Mutex
	mu        sync.Mutex
	metrics   []Metric
	observers []Observer
	input     input.Input
	result    *Result
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithCollector(c *metrics.Collector) Option {
	return func(s *Simulator) { s.collector = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *Simulator) { s.interval = d }
}

func WithScheduler(sched playback.Scheduler) Option {
	return func(s *Simulator) { s.sched = sched }
}

func New(gen algorithms.Generator, norm input.Normalizer, opts ...Option) *Simulator {
	s := &Simulator{
		gen:    gen,
		norm:   norm,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctrl = playback.New(s.interval, s.sched)
	s.ctrl.OnChange(s.notify)
	return s
}

func (s *Simulator) AddMetric(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Load normalizes raw and, if it differs from the current input, generates a
// new trace and resets playback. Input that normalizes to nothing is
// rejected with input.ErrInvalidInput and the previous trace is kept.
func (s *Simulator) Load(raw string) (bool, error) {
	in, err := s.norm.Normalize(raw)
	if err != nil {
		if errors.Is(err, input.ErrInvalidInput) {
			s.collector.ObserveRejected()
			s.logger.Warn("input rejected, keeping previous trace", "algorithm", s.gen.Name(), "raw", raw)
		}
		return false, err
	}
	return s.SetInput(in)
}

// SetInput is Load for an already normalized input.
func (s *Simulator) SetInput(in input.Input) (bool, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.Lock()
	if s.input != nil && s.input.Equal(in) {
		s.mu.Unlock()
		return false, nil
	}
	ms := s.metrics
	s.mu.Unlock()

	res, err := Generate(s.gen, in, ms)
	if err != nil {
		return false, err
	}
	s.collector.ObserveGeneration(res.Algorithm, res.Trace.Len(), res.Elapsed)

	s.mu.Lock()
	s.input = in
	s.result = res
	s.mu.Unlock()
	s.ctrl.Load(res.Trace)

	s.logger.Info("trace generated",
		"algorithm", res.Algorithm,
		"input", in.String(),
		"steps", res.Trace.Len(),
		"elapsed", res.Elapsed)
	return true, nil
}

// Generate runs gen over in and evaluates ms against the resulting trace.
func Generate(gen algorithms.Generator, in input.Input, ms []Metric) (*Result, error) {
	start := time.Now()
	tr, err := gen.Generate(in)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", gen.Name(), err)
	}
	elapsed := time.Since(start)
	if err := trace.Validate(tr); err != nil {
		return nil, fmt.Errorf("generate %s: %w", gen.Name(), err)
	}
	return &Result{
		Algorithm: gen.Name(),
		Input:     in,
		Trace:     tr,
		Metrics:   Evaluate(tr, ms),
		Elapsed:   elapsed,
	}, nil
}

func (s *Simulator) notify(st playback.Status) {
	s.collector.ObserveTransition(st.Mode.String())
	s.mu.Lock()
	obs := s.observers
	s.mu.Unlock()
	for _, o := range obs {
		o.OnStep(st)
	}
}

func (s *Simulator) Algorithm() string { return s.gen.Name() }

func (s *Simulator) Controller() *playback.Controller { return s.ctrl }

func (s *Simulator) Input() input.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Result returns the most recent generation, or nil before the first Load.
func (s *Simulator) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Simulator) Trace() *trace.Trace         { return s.ctrl.Trace() }
func (s *Simulator) CurrentStep() *trace.Step    { return s.ctrl.CurrentStep() }
func (s *Simulator) ProgressPercent() int        { return s.ctrl.Percent() }
func (s *Simulator) Mode() playback.Mode         { return s.ctrl.Mode() }
func (s *Simulator) Len() int                    { return s.ctrl.Len() }
func (s *Simulator) Status() playback.Status     { return s.ctrl.Status() }
func (s *Simulator) VisualTag(id int) view.Tag   { return view.Project(s.ctrl.CurrentStep(), id) }
func (s *Simulator) Play() bool                  { return s.ctrl.Play() }
func (s *Simulator) Pause() bool                 { return s.ctrl.Pause() }
func (s *Simulator) Stop()                       { s.ctrl.Stop() }
func (s *Simulator) StepForward() bool           { return s.ctrl.StepForward() }
func (s *Simulator) StepBackward() bool          { return s.ctrl.StepBackward() }
func (s *Simulator) Seek(k int)                  { s.ctrl.Seek(k) }
func (s *Simulator) SetInterval(d time.Duration) { s.ctrl.SetInterval(d) }
