package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/input"
)

const (
	DefaultAlgorithm = "bubble_sort"
	DefaultArray     = "64,34,25,12,22,11,90,88,76,45"
	DefaultGraph     = "1-2,1-3,2-4,2-5,3-5"
	DefaultWeighted  = "0-1:4,0-2:1,2-1:2,1-3:1,2-3:5,3-4:3"
	DefaultTarget    = 22
	DefaultTheme     = "default"
	DefaultDataDir   = "runs"
)

type Config struct {
	Algorithm string `yaml:"algorithm"`
	Input     string `yaml:"input"`
	Target    int    `yaml:"target"`
	Start     int    `yaml:"start"`
	// TickMs of 0 means the algorithm's default interval.
	TickMs  int    `yaml:"tick_ms"`
	Theme   string `yaml:"theme"`
	DataDir string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input:     DefaultArray,
		Target:    DefaultTarget,
		Start:     -1,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Tick returns the configured interval, or 0 when the algorithm default
// applies.
func (c *Config) Tick() time.Duration {
	if c.TickMs <= 0 {
		return 0
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

// DefaultInput returns the sample input used when none is configured.
func DefaultInput(kind input.Kind) string {
	switch kind {
	case input.KindGraph:
		return DefaultGraph
	case input.KindWeighted:
		return DefaultWeighted
	default:
		return DefaultArray
	}
}

// NormalizerOptions maps the config onto input options.
func (c *Config) NormalizerOptions() input.Options {
	return input.Options{Target: c.Target, Start: c.Start}
}
