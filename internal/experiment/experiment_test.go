package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
)

func TestRegistryCoversAllGenerators(t *testing.T) {
	r := NewRegistry()
	if len(r.List()) != len(algorithms.All()) {
		t.Fatalf("expected %d algorithms, got %d", len(algorithms.All()), len(r.List()))
	}
	for _, name := range r.List() {
		e, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if e.Description == "" {
			t.Errorf("%s has no description", name)
		}
	}
}

func TestRegistryTicks(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name string
		want string
	}{
		{algorithms.NameBubbleSort, "1s"},
		{algorithms.NameBFS, "1s"},
		{algorithms.NameDijkstra, "1.2s"},
	}
	for _, tt := range tests {
		e, _ := r.Get(tt.name)
		if e.Tick.String() != tt.want {
			t.Errorf("%s tick = %s, want %s", tt.name, e.Tick, tt.want)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	if _, err := NewRegistry().GetGenerator("bogo_sort"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestListKind(t *testing.T) {
	got := NewRegistry().ListKind(input.KindGraph)
	if len(got) != 2 || got[0] != algorithms.NameBFS || got[1] != algorithms.NameDFS {
		t.Errorf("ListKind(graph) = %v", got)
	}
}

func TestExperimentRun(t *testing.T) {
	e := New(Config{Algorithm: algorithms.NameBFS, Input: "1-2,1-3,2-4,2-5,3-5", Start: 1})
	if _, err := e.Run(context.Background()); err == nil {
		t.Error("expected error before Setup")
	}
	if err := e.Setup(NewRegistry(), nil, nil, nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Metrics["visits"] != 5 {
		t.Errorf("visits = %v, want 5", res.Metrics["visits"])
	}
	if e.GetSimulator().Len() != res.Trace.Len() {
		t.Error("simulator not loaded with result trace")
	}
}

func TestExperimentInvalidInput(t *testing.T) {
	e := New(Config{Algorithm: algorithms.NameBubbleSort, Input: "x,y"})
	if err := e.Setup(NewRegistry(), nil, nil, nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := e.Run(context.Background()); !errors.Is(err, input.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
