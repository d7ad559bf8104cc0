package algorithms

import (
	"errors"
	"fmt"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

// ErrInputKind indicates a generator was handed an input of the wrong shape.
var ErrInputKind = errors.New("algorithms: input kind mismatch")

const (
	NameLinearSearch  = "linear_search"
	NameBinarySearch  = "binary_search"
	NameBubbleSort    = "bubble_sort"
	NameInsertionSort = "insertion_sort"
	NameSelectionSort = "selection_sort"
	NameMergeSort     = "merge_sort"
	NameQuickSort     = "quick_sort"
	NameHeapSort      = "heap_sort"
	NameCountingSort  = "counting_sort"
	NameRadixSort     = "radix_sort"
	NameBFS           = "bfs"
	NameDFS           = "dfs"
	NameDijkstra      = "dijkstra"
	NameKruskal       = "kruskal"
	NameFloydWarshall = "floyd_warshall"
)

// Generator produces the trace for one algorithm.
type Generator interface {
	Name() string
	InputKind() input.Kind
	Generate(in input.Input) (*trace.Trace, error)
}

type generator[T input.Input] struct {
	name string
	kind input.Kind
	fn   func(T) *trace.Trace
}

func (g generator[T]) Name() string          { return g.name }
func (g generator[T]) InputKind() input.Kind { return g.kind }

func (g generator[T]) Generate(in input.Input) (*trace.Trace, error) {
	v, ok := in.(T)
	if !ok {
		got := "nil"
		if in != nil {
			got = string(in.Kind())
		}
		return nil, fmt.Errorf("%w: %s wants %s, got %s", ErrInputKind, g.name, g.kind, got)
	}
	return g.fn(v), nil
}

// All returns every generator in menu order.
func All() []Generator {
	return []Generator{
		generator[input.Array]{NameLinearSearch, input.KindArray, LinearSearch},
		generator[input.Array]{NameBinarySearch, input.KindArray, BinarySearch},
		generator[input.Array]{NameBubbleSort, input.KindArray, BubbleSort},
		generator[input.Array]{NameInsertionSort, input.KindArray, InsertionSort},
		generator[input.Array]{NameSelectionSort, input.KindArray, SelectionSort},
		generator[input.Array]{NameMergeSort, input.KindArray, MergeSort},
		generator[input.Array]{NameQuickSort, input.KindArray, QuickSort},
		generator[input.Array]{NameHeapSort, input.KindArray, HeapSort},
		generator[input.Array]{NameCountingSort, input.KindArray, CountingSort},
		generator[input.Array]{NameRadixSort, input.KindArray, RadixSort},
		generator[input.Graph]{NameBFS, input.KindGraph, BFS},
		generator[input.Graph]{NameDFS, input.KindGraph, DFS},
		generator[input.Weighted]{NameDijkstra, input.KindWeighted, Dijkstra},
		generator[input.Weighted]{NameKruskal, input.KindWeighted, Kruskal},
		generator[input.Weighted]{NameFloydWarshall, input.KindWeighted, FloydWarshall},
	}
}
