package config

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/input"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble_sort" {
		t.Errorf("expected algorithm bubble_sort, got %s", cfg.Algorithm)
	}
	if cfg.Input != DefaultArray {
		t.Errorf("unexpected default input %q", cfg.Input)
	}
	if cfg.Tick() != 0 {
		t.Error("default tick should defer to the algorithm")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "dfs"
	cfg.Input = "1-2,2-3"
	cfg.TickMs = 250

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
	if got.Tick() != 250*time.Millisecond {
		t.Errorf("tick = %s", got.Tick())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bubble_sort", "tiny")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Input != "3,1,2" {
		t.Errorf("expected input 3,1,2, got %s", cfg.Input)
	}

	cfg.Input = "mutated"
	if GetPreset("bubble_sort", "tiny").Input != "3,1,2" {
		t.Error("GetPreset returned shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("bubble_sort", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "tiny") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("dijkstra")
	if !sort.StringsAreSorted(presets) {
		t.Errorf("presets not sorted: %v", presets)
	}
	if len(presets) != len(weightedPresets) || presets[0] != "classic" {
		t.Errorf("unexpected dijkstra presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestPresetsNormalize(t *testing.T) {
	for alg, presets := range Presets {
		for name, cfg := range presets {
			n := input.NewNormalizer(kinds[alg], cfg.NormalizerOptions())
			if _, err := n.Normalize(cfg.Input); err != nil {
				t.Errorf("%s/%s: %v", alg, name, err)
			}
		}
	}
}

func TestDefaultInput(t *testing.T) {
	if DefaultInput(input.KindGraph) != DefaultGraph || DefaultInput(input.KindWeighted) != DefaultWeighted {
		t.Error("wrong default inputs")
	}
}
