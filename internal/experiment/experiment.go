package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sim"
)

type Config struct {
	Algorithm string
	Input     string
	Target    int
	Start     int
	// Tick overrides the registry's default interval when positive.
	Tick time.Duration
}

type Experiment struct {
	cfg       Config
	entry     Entry
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the algorithm and builds the simulator. Logger, collector
// and scheduler may be nil.
func (e *Experiment) Setup(reg *Registry, logger *slog.Logger, collector *metrics.Collector, sched playback.Scheduler) error {
	entry, err := reg.Get(e.cfg.Algorithm)
	if err != nil {
		return err
	}
	e.entry = entry

	tick := entry.Tick
	if e.cfg.Tick > 0 {
		tick = e.cfg.Tick
	}

	opts := []sim.Option{sim.WithInterval(tick), sim.WithCollector(collector), sim.WithScheduler(sched)}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	norm := input.NewNormalizer(entry.InputKind, input.Options{Target: e.cfg.Target, Start: e.cfg.Start})
	e.simulator = sim.New(entry.Generator, norm, opts...)
	for _, m := range reg.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

// Run loads the configured input and returns the generated result.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := e.simulator.Load(e.cfg.Input); err != nil {
		return nil, fmt.Errorf("load %s input: %w", e.entry.InputKind, err)
	}
	return e.simulator.Result(), nil
}

func (e *Experiment) Entry() Entry { return e.entry }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
