package experiment

import (
	"fmt"
	"slices"
	"time"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/sim"
)

const (
	DefaultTick         = 1000 * time.Millisecond
	DefaultWeightedTick = 1200 * time.Millisecond
)

// Entry describes one registered algorithm.
type Entry struct {
	Name        string
	Description string
	Generator   algorithms.Generator
	InputKind   input.Kind
	Tick        time.Duration
}

type Registry struct {
	entries map[string]Entry
	order   []string
}

var descriptions = map[string]string{
	algorithms.NameLinearSearch:  "scan left to right for the target",
	algorithms.NameBinarySearch:  "halve a sorted copy until the target is found",
	algorithms.NameBubbleSort:    "swap adjacent out-of-order pairs",
	algorithms.NameInsertionSort: "sink each element into the sorted prefix",
	algorithms.NameSelectionSort: "select the minimum of the unsorted suffix",
	algorithms.NameMergeSort:     "split in halves and merge back",
	algorithms.NameQuickSort:     "partition around the last element",
	algorithms.NameHeapSort:      "build a max-heap and extract the root",
	algorithms.NameCountingSort:  "tally values into buckets and write them back",
	algorithms.NameRadixSort:     "distribute by decimal digit, least significant first",
	algorithms.NameBFS:           "breadth-first traversal with a queue",
	algorithms.NameDFS:           "depth-first traversal with a stack",
	algorithms.NameDijkstra:      "single-source shortest paths",
	algorithms.NameKruskal:       "minimum spanning tree by ascending edge weight",
	algorithms.NameFloydWarshall: "all-pairs shortest paths",
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, g := range algorithms.All() {
		tick := DefaultTick
		if g.InputKind() == input.KindWeighted {
			tick = DefaultWeightedTick
		}
		r.entries[g.Name()] = Entry{
			Name:        g.Name(),
			Description: descriptions[g.Name()],
			Generator:   g,
			InputKind:   g.InputKind(),
			Tick:        tick,
		}
		r.order = append(r.order, g.Name())
	}
	return r
}

func (r *Registry) Get(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown algorithm: %s", name)
	}
	return e, nil
}

func (r *Registry) GetGenerator(name string) (algorithms.Generator, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return e.Generator, nil
}

// List returns algorithm names in menu order.
func (r *Registry) List() []string {
	return slices.Clone(r.order)
}

// ListKind returns the algorithms that accept inputs of kind k.
func (r *Registry) ListKind(k input.Kind) []string {
	var names []string
	for _, name := range r.order {
		if r.entries[name].InputKind == k {
			names = append(names, name)
		}
	}
	return names
}

// DefaultMetrics returns a fresh metric set; callers own the result.
func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewSteps(),
		metrics.NewComparisons(),
		metrics.NewSwaps(),
		metrics.NewWrites(),
		metrics.NewVisits(),
	}
}
