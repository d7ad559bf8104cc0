// Package automation runs scripted sequences of trace generations described
// in YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/sim"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one generation. Preset supplies input, target and start;
// explicit fields override it. Target and Start are pointers so that 0 can
// be told apart from unset.
type ScenarioStep struct {
	Algorithm string `yaml:"algorithm"`
	Preset    string `yaml:"preset"`
	Input     string `yaml:"input"`
	Target    *int   `yaml:"target"`
	Start     *int   `yaml:"start"`
	TickMs    int    `yaml:"tick_ms"`
	Save      bool   `yaml:"save"`
}

// StepResult pairs a step with its generated result.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	Tick   int64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Resolve turns a step into an experiment config.
func (s ScenarioStep) Resolve(reg *experiment.Registry) (experiment.Config, error) {
	entry, err := reg.Get(s.Algorithm)
	if err != nil {
		return experiment.Config{}, err
	}

	cfg := config.DefaultConfig()
	cfg.Algorithm = s.Algorithm
	cfg.Input = config.DefaultInput(entry.InputKind)
	if s.Preset != "" {
		p := config.GetPreset(s.Algorithm, s.Preset)
		if p == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset %s for %s", s.Preset, s.Algorithm)
		}
		cfg.Input, cfg.Target, cfg.Start = p.Input, p.Target, p.Start
	}
	if s.Input != "" {
		cfg.Input = s.Input
	}
	if s.Target != nil {
		cfg.Target = *s.Target
	}
	if s.Start != nil {
		cfg.Start = *s.Start
	}
	cfg.TickMs = s.TickMs

	return experiment.Config{
		Algorithm: cfg.Algorithm,
		Input:     cfg.Input,
		Target:    cfg.Target,
		Start:     cfg.Start,
		Tick:      cfg.Tick(),
	}, nil
}

// RunScenario executes all steps in order. Results of the steps that
// completed are returned along with the first error.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, logger *slog.Logger, collector *metrics.Collector) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		cfg, err := step.Resolve(reg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(reg, logger, collector, nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:   step,
			Result: result,
			Tick:   exp.GetSimulator().Controller().Interval().Milliseconds(),
		})
	}

	return results, nil
}
