package algorithms_test

import (
	"math"
	"slices"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	sampleArray    = input.Array{Values: []int{64, 34, 25, 12, 22, 11, 90, 88, 76, 45}, Target: 22}
	sampleGraph    = input.NewGraph([]input.Edge{{1, 2}, {1, 3}, {2, 4}, {2, 5}, {3, 5}}, 1)
	sampleWeighted = input.NewWeighted([]input.WeightedEdge{
		{0, 1, 4}, {0, 2, 1}, {2, 1, 2}, {1, 3, 1}, {2, 3, 5}, {3, 4, 3},
	}, 0, 4)
)

func sampleFor(kind input.Kind) input.Input {
	switch kind {
	case input.KindGraph:
		return sampleGraph
	case input.KindWeighted:
		return sampleWeighted
	default:
		return sampleArray
	}
}

func emptyFor(kind input.Kind) input.Input {
	switch kind {
	case input.KindGraph:
		return input.Graph{Start: trace.None}
	case input.KindWeighted:
		return input.Weighted{Source: 0, Target: trace.None}
	default:
		return input.Array{}
	}
}

func singleFor(kind input.Kind) input.Input {
	switch kind {
	case input.KindGraph:
		return input.Graph{Nodes: []int{7}, Start: 7}
	case input.KindWeighted:
		return input.Weighted{Vertices: 1}
	default:
		return input.Array{Values: []int{5}, Target: 5}
	}
}

func generate(g algorithms.Generator, in input.Input) *trace.Trace {
	tr, err := g.Generate(in)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

func snapshotOf(s trace.State) []int {
	switch st := s.(type) {
	case trace.CompareExchangeState:
		return st.Snapshot
	case trace.MergeState:
		return st.Snapshot
	case trace.PartitionState:
		return st.Snapshot
	case trace.HeapState:
		return st.Snapshot
	case trace.BucketState:
		return st.Snapshot
	}
	return nil
}

func finalizedOf(s trace.State) []int {
	switch st := s.(type) {
	case trace.CompareExchangeState:
		return st.Finalized
	case trace.MergeState:
		return st.Finalized
	case trace.PartitionState:
		return st.Finalized
	case trace.HeapState:
		return st.Finalized
	case trace.BucketState:
		return st.Finalized
	}
	return nil
}

var _ = Describe("Generators", func() {
	for _, g := range algorithms.All() {
		g := g

		Describe(g.Name(), func() {
			It("produces a well-formed trace", func() {
				tr := generate(g, sampleFor(g.InputKind()))
				Expect(trace.Validate(tr)).To(Succeed())
				Expect(tr.Algorithm()).To(Equal(g.Name()))
			})

			It("is deterministic", func() {
				a := generate(g, sampleFor(g.InputKind()))
				b := generate(g, sampleFor(g.InputKind()))
				Expect(a.Steps()).To(Equal(b.Steps()))
			})

			It("uses a single state kind throughout", func() {
				tr := generate(g, sampleFor(g.InputKind()))
				kind := tr.At(0).State.Kind()
				for _, s := range tr.Steps() {
					Expect(s.State.Kind()).To(Equal(kind))
				}
			})

			It("yields start and terminal only for empty input", func() {
				tr := generate(g, emptyFor(g.InputKind()))
				Expect(tr.Len()).To(Equal(2))
				Expect(trace.Validate(tr)).To(Succeed())
				Expect(strings.ToLower(tr.Last().Message)).To(ContainSubstring("nothing to"))
			})

			It("yields start and terminal only for a single element", func() {
				tr := generate(g, singleFor(g.InputKind()))
				Expect(tr.Len()).To(Equal(2))
				Expect(trace.Validate(tr)).To(Succeed())
			})

			It("rejects the wrong input kind", func() {
				var wrong input.Input = sampleGraph
				if g.InputKind() == input.KindGraph {
					wrong = sampleArray
				}
				_, err := g.Generate(wrong)
				Expect(err).To(MatchError(algorithms.ErrInputKind))
			})
		})
	}
})

var _ = Describe("Sorting generators", func() {
	sorts := []string{
		algorithms.NameBubbleSort,
		algorithms.NameInsertionSort,
		algorithms.NameSelectionSort,
		algorithms.NameMergeSort,
		algorithms.NameQuickSort,
		algorithms.NameHeapSort,
		algorithms.NameCountingSort,
		algorithms.NameRadixSort,
	}
	inputs := [][]int{
		{64, 34, 25, 12, 22, 11, 90, 88, 76, 45},
		{3, 1, 2},
		{5, 5, 1, 5},
		{-3, 10, 0, -27, 4},
		{1, 2, 3, 4},
		{math.MaxInt64, -1, 5},
		{math.MinInt64, math.MaxInt64, 0, -1, math.MinInt64},
		{math.MaxInt64, math.MaxInt64 - 1},
	}

	byName := make(map[string]algorithms.Generator)
	for _, g := range algorithms.All() {
		byName[g.Name()] = g
	}

	for _, name := range sorts {
		name := name
		It(name+" ends sorted with every index finalized", func() {
			for _, values := range inputs {
				tr := generate(byName[name], input.Array{Values: values})
				want := slices.Clone(values)
				slices.Sort(want)

				last := tr.Last().State
				Expect(snapshotOf(last)).To(Equal(want), "input %v", values)
				Expect(finalizedOf(last)).To(ConsistOf(allIndices(len(values))), "input %v", values)
				Expect(tr.Last().Message).To(ContainSubstring("sorted"))
			}
		})

		It(name+" never mutates its input", func() {
			values := []int{9, 3, 7, 1}
			generate(byName[name], input.Array{Values: values})
			Expect(values).To(Equal([]int{9, 3, 7, 1}))
		})
	}
})

var _ = Describe("Linear search", func() {
	It("reports the match at index 4", func() {
		tr := algorithms.LinearSearch(sampleArray)

		var matched []trace.LinearScanState
		for _, s := range tr.Steps() {
			if st := s.State.(trace.LinearScanState); st.Matched {
				matched = append(matched, st)
			}
		}
		Expect(matched).NotTo(BeEmpty())
		Expect(matched[0]).To(Equal(trace.LinearScanState{Index: 4, Matched: true}))
		Expect(tr.Last().Message).To(ContainSubstring("index 4"))
	})

	It("distinguishes not found in the payload", func() {
		tr := algorithms.LinearSearch(input.Array{Values: sampleArray.Values, Target: 999})

		Expect(tr.Last().State.(trace.LinearScanState).Matched).To(BeFalse())
		for _, s := range tr.Steps() {
			Expect(s.State.(trace.LinearScanState).Matched).To(BeFalse())
		}
		Expect(tr.Last().Message).To(ContainSubstring("not found"))
	})

	It("emits one step per element checked", func() {
		tr := algorithms.LinearSearch(input.Array{Values: []int{1, 2, 3}, Target: 999})
		Expect(tr.Len()).To(Equal(5))
	})
})

var _ = Describe("Binary search", func() {
	It("finds the target in the sorted copy", func() {
		tr := algorithms.BinarySearch(sampleArray)
		last := tr.Last().State.(trace.RangeSearchState)
		Expect(last.Matched).To(BeTrue())
		Expect(last.Snapshot[last.Mid]).To(Equal(22))
	})

	It("reports a miss without a match flag", func() {
		tr := algorithms.BinarySearch(input.Array{Values: []int{1, 3, 5, 7}, Target: 4})
		last := tr.Last().State.(trace.RangeSearchState)
		Expect(last.Matched).To(BeFalse())
		Expect(last.Mid).To(Equal(trace.None))
	})
})

var _ = Describe("Bubble sort on [3,1,2]", func() {
	tr := algorithms.BubbleSort(input.Array{Values: []int{3, 1, 2}})

	It("compares two pairs in the first pass and one in the second", func() {
		var pairs [][2]int
		for _, s := range tr.Steps()[1 : tr.Len()-1] {
			st := s.State.(trace.CompareExchangeState)
			if !st.Swapped {
				pairs = append(pairs, [2]int{st.A, st.B})
			}
		}
		Expect(pairs).To(Equal([][2]int{{0, 1}, {1, 2}, {0, 1}}))
	})

	It("ends sorted and fully finalized", func() {
		last := tr.Last().State.(trace.CompareExchangeState)
		Expect(last.Snapshot).To(Equal([]int{1, 2, 3}))
		Expect(last.Finalized).To(ConsistOf(0, 1, 2))
	})
})

var _ = Describe("Graph traversal", func() {
	visitedOrder := func(tr *trace.Trace) []int {
		return tr.Last().State.(trace.GraphTraversalState).Visited
	}

	It("visits BFS in neighbour-list order", func() {
		tr := algorithms.BFS(sampleGraph)
		Expect(visitedOrder(tr)).To(Equal([]int{1, 2, 3, 4, 5}))
		Expect(tr.Last().Message).To(ContainSubstring("1 → 2 → 3 → 4 → 5"))
	})

	It("never enqueues a node twice in BFS", func() {
		tr := algorithms.BFS(sampleGraph)
		for _, s := range tr.Steps() {
			st := s.State.(trace.GraphTraversalState)
			seen := make(map[int]bool)
			for _, n := range st.Frontier {
				Expect(seen[n]).To(BeFalse())
				seen[n] = true
			}
		}
	})

	It("visits DFS depth first in adjacency order", func() {
		tr := algorithms.DFS(sampleGraph)
		Expect(visitedOrder(tr)).To(Equal([]int{1, 2, 4, 5, 3}))
	})

	It("only reaches the start's component", func() {
		g := input.NewGraph([]input.Edge{{1, 2}, {3, 4}}, 1)
		Expect(visitedOrder(algorithms.BFS(g))).To(Equal([]int{1, 2}))
		Expect(visitedOrder(algorithms.DFS(g))).To(Equal([]int{1, 2}))
	})
})

var _ = Describe("Dijkstra", func() {
	It("finds the shortest path to the target", func() {
		tr := algorithms.Dijkstra(sampleWeighted)
		last := tr.Last().State.(trace.ShortestPathState)
		Expect(last.Path).To(Equal([]int{0, 2, 1, 3, 4}))
		Expect([]float64(last.Distances)).To(Equal([]float64{0, 3, 1, 4, 7}))
		Expect(tr.Last().Message).To(ContainSubstring("distance 7"))
	})

	It("reports an unreachable target", func() {
		w := input.NewWeighted([]input.WeightedEdge{{0, 1, 1}, {2, 3, 1}}, 0, 3)
		tr := algorithms.Dijkstra(w)
		last := tr.Last().State.(trace.ShortestPathState)
		Expect(last.Path).To(BeEmpty())
		Expect(math.IsInf(last.Distances[3], 1)).To(BeTrue())
		Expect(tr.Last().Message).To(ContainSubstring("unreachable"))
	})
})

var _ = Describe("Kruskal", func() {
	It("accepts the minimum spanning tree edges", func() {
		tr := algorithms.Kruskal(sampleWeighted)
		last := tr.Last().State.(trace.MstState)
		Expect(last.AcceptedEdges).To(Equal([]int{1, 3, 2, 5}))
		Expect(tr.Last().Message).To(ContainSubstring("total weight 7"))
	})

	It("rejects a cycle-closing edge", func() {
		w := input.NewWeighted([]input.WeightedEdge{{0, 1, 1}, {1, 2, 1}, {0, 2, 1}, {2, 3, 5}}, 0, 3)
		tr := algorithms.Kruskal(w)
		var rejected []int
		for _, s := range tr.Steps() {
			if st := s.State.(trace.MstState); st.RejectedAsCycle {
				rejected = append(rejected, st.CandidateEdge)
			}
		}
		Expect(rejected).To(Equal([]int{2}))
	})

	It("reports a spanning forest for a disconnected graph", func() {
		w := input.NewWeighted([]input.WeightedEdge{{0, 1, 1}, {2, 3, 1}}, 0, 3)
		Expect(algorithms.Kruskal(w).Last().Message).To(ContainSubstring("disconnected"))
	})
})

var _ = Describe("Floyd-Warshall", func() {
	It("matches Dijkstra from every source", func() {
		tr := algorithms.FloydWarshall(sampleWeighted)
		dist := tr.Last().State.(trace.MatrixState).Dist
		for src := 0; src < sampleWeighted.Vertices; src++ {
			w := sampleWeighted
			w.Source = src
			d := algorithms.Dijkstra(w).Last().State.(trace.ShortestPathState).Distances
			Expect([]float64(dist[src])).To(Equal([]float64(d)), "source %d", src)
		}
	})

	It("skips comparisons that cannot change the matrix", func() {
		tr := algorithms.FloydWarshall(sampleWeighted)
		for _, s := range tr.Steps()[1 : tr.Len()-1] {
			st := s.State.(trace.MatrixState)
			Expect(st.I).NotTo(Equal(st.J))
			Expect(st.I).NotTo(Equal(st.K))
			Expect(st.J).NotTo(Equal(st.K))
			Expect(math.IsInf(st.Dist[st.I][st.K], 1)).To(BeFalse())
			Expect(math.IsInf(st.Dist[st.K][st.J], 1)).To(BeFalse())
		}
	})

	It("keeps earlier snapshots when later steps update the matrix", func() {
		tr := algorithms.FloydWarshall(sampleWeighted)
		first := tr.At(0).State.(trace.MatrixState).Dist
		last := tr.Last().State.(trace.MatrixState).Dist
		Expect(math.IsInf(first[0][3], 1)).To(BeTrue())
		Expect(last[0][3]).To(Equal(4.0))
	})

	It("stays small on a sparse graph with a high vertex label", func() {
		w := input.NewWeighted([]input.WeightedEdge{{0, input.MaxVertex, 1}}, 0, input.MaxVertex)
		Expect(w.Vertices).To(Equal(input.MaxVertex + 1))

		fw := algorithms.FloydWarshall(w)
		Expect(fw.Len()).To(Equal(2))
		Expect(fw.Last().State.(trace.MatrixState).Dist[input.MaxVertex][0]).To(Equal(1.0))

		Expect(algorithms.Dijkstra(w).Len()).To(BeNumerically("<", 10))
		Expect(algorithms.Kruskal(w).Len()).To(BeNumerically("<", 10))
	})
})

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
