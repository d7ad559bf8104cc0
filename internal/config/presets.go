package config

import (
	"slices"

	"github.com/san-kum/algoviz/internal/input"
)

type preset struct {
	input  string
	target int
	start  int
}

var arrayPresets = map[string]preset{
	"classic":    {input: DefaultArray, target: DefaultTarget, start: -1},
	"reversed":   {input: "9,8,7,6,5,4,3,2,1", target: 1, start: -1},
	"sorted":     {input: "1,2,3,4,5,6,7,8,9", target: 7, start: -1},
	"duplicates": {input: "5,3,5,1,3,5,1", target: 3, start: -1},
	"negatives":  {input: "-12,40,-3,0,27,-45,8", target: 0, start: -1},
	"tiny":       {input: "3,1,2", target: 2, start: -1},
}

var graphPresets = map[string]preset{
	"diamond":      {input: DefaultGraph, start: 1},
	"chain":        {input: "1-2,2-3,3-4,4-5,5-6", start: 1},
	"star":         {input: "0-1,0-2,0-3,0-4,0-5", start: 0},
	"disconnected": {input: "1-2,2-3,4-5", start: 1},
	"cycle":        {input: "1-2,2-3,3-4,4-1,1-3", start: 2},
}

var weightedPresets = map[string]preset{
	"classic":  {input: DefaultWeighted, start: 0, target: 4},
	"triangle": {input: "0-1:1,1-2:1,0-2:3", start: 0, target: 2},
	"grid":     {input: "0-1:2,1-2:2,0-3:1,1-4:3,2-5:1,3-4:1,4-5:4", start: 0, target: 5},
	"islands":  {input: "0-1:1,2-3:1", start: 0, target: 3},
}

var kinds = map[string]input.Kind{
	"linear_search":  input.KindArray,
	"binary_search":  input.KindArray,
	"bubble_sort":    input.KindArray,
	"insertion_sort": input.KindArray,
	"selection_sort": input.KindArray,
	"merge_sort":     input.KindArray,
	"quick_sort":     input.KindArray,
	"heap_sort":      input.KindArray,
	"counting_sort":  input.KindArray,
	"radix_sort":     input.KindArray,
	"bfs":            input.KindGraph,
	"dfs":            input.KindGraph,
	"dijkstra":       input.KindWeighted,
	"kruskal":        input.KindWeighted,
	"floyd_warshall": input.KindWeighted,
}

// Presets maps algorithm -> preset name -> config.
var Presets = buildPresets()

func buildPresets() map[string]map[string]*Config {
	out := make(map[string]map[string]*Config, len(kinds))
	for alg, kind := range kinds {
		src := arrayPresets
		switch kind {
		case input.KindGraph:
			src = graphPresets
		case input.KindWeighted:
			src = weightedPresets
		}
		m := make(map[string]*Config, len(src))
		for name, p := range src {
			m[name] = &Config{
				Algorithm: alg,
				Input:     p.input,
				Target:    p.target,
				Start:     p.start,
				Theme:     DefaultTheme,
				DataDir:   DefaultDataDir,
			}
		}
		out[alg] = m
	}
	return out
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names of algorithm in sorted order.
func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
