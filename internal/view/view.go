// Package view projects a playback step onto individual entities (array
// indices, graph nodes, vertices or edges) as visual tags. Projection is a
// pure function of the step and the entity; it never looks at playback mode
// or history, so stepping backward renders exactly what was shown before.
package view

import (
	"github.com/san-kum/algoviz/internal/trace"
)

// Tag is the visual role of one entity in one step.
type Tag int

const (
	Default Tag = iota
	Active
	Comparing
	Swapped
	Visited
	Frontier
	Finalized
	Matched
	OnPath
)

var tagNames = [...]string{
	Default:   "default",
	Active:    "active",
	Comparing: "comparing",
	Swapped:   "swapped",
	Visited:   "visited",
	Frontier:  "frontier",
	Finalized: "finalized",
	Matched:   "matched",
	OnPath:    "on_path",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}
	return tagNames[t]
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	return []Tag{Default, Active, Comparing, Swapped, Visited, Frontier, Finalized, Matched, OnPath}
}

// Project returns the tag of entity id in step. A nil step (nothing played
// yet) projects everything to Default.
//
// The entity id depends on the state family: an array index for array
// algorithms, a node label for traversals, a vertex for shortest paths, an
// edge position for MST steps and a flattened cell i*n+j for matrix steps.
func Project(step *trace.Step, id int) Tag {
	if step == nil || step.State == nil {
		return Default
	}

	switch s := step.State.(type) {
	case trace.LinearScanState:
		return linearScan(s, id)
	case trace.RangeSearchState:
		return rangeSearch(s, id)
	case trace.CompareExchangeState:
		return compareExchange(s, id)
	case trace.MergeState:
		return merge(s, id)
	case trace.PartitionState:
		return partition(s, id)
	case trace.HeapState:
		return heap(s, id)
	case trace.BucketState:
		return bucket(s, id)
	case trace.GraphTraversalState:
		return graphTraversal(s, id)
	case trace.ShortestPathState:
		return shortestPath(s, id)
	case trace.MstState:
		return mst(s, id)
	case trace.MatrixState:
		return matrix(s, id)
	}
	return Default
}

// ProjectAll projects entities 0..n-1.
func ProjectAll(step *trace.Step, n int) []Tag {
	tags := make([]Tag, n)
	for i := range tags {
		tags[i] = Project(step, i)
	}
	return tags
}

func linearScan(s trace.LinearScanState, id int) Tag {
	if id != s.Index {
		return Default
	}
	if s.Matched {
		return Matched
	}
	return Active
}

func rangeSearch(s trace.RangeSearchState, id int) Tag {
	switch {
	case id == s.Mid && s.Matched:
		return Matched
	case id == s.Mid:
		return Active
	case id >= s.Low && id <= s.High:
		return Frontier
	}
	return Default
}

func compareExchange(s trace.CompareExchangeState, id int) Tag {
	if id == s.A || id == s.B {
		if s.Swapped {
			return Swapped
		}
		return Comparing
	}
	if trace.Contains(s.Finalized, id) {
		return Finalized
	}
	return Default
}

func merge(s trace.MergeState, id int) Tag {
	switch {
	case id == s.Write:
		return Active
	case id == s.A || id == s.B:
		return Comparing
	case trace.Contains(s.Finalized, id):
		return Finalized
	case id >= s.Range[0] && id <= s.Range[1]:
		return Frontier
	}
	return Default
}

func partition(s trace.PartitionState, id int) Tag {
	if s.Swapping && (id == s.Boundary || id == s.ScanIndex) {
		return Swapped
	}
	switch {
	case trace.Contains(s.Finalized, id):
		return Finalized
	case id == s.PivotIndex:
		return Active
	case id == s.ScanIndex:
		return Comparing
	case id >= s.Range[0] && id < s.Boundary:
		return Visited
	}
	return Default
}

func heap(s trace.HeapState, id int) Tag {
	if s.Swapping != nil && (id == s.Swapping[0] || id == s.Swapping[1]) {
		return Swapped
	}
	switch {
	case trace.Contains(s.Finalized, id):
		return Finalized
	case id == s.NodeA || id == s.NodeB:
		return Comparing
	case id >= 0 && id < s.HeapSize:
		return Frontier
	}
	return Default
}

func bucket(s trace.BucketState, id int) Tag {
	if trace.Contains(s.Finalized, id) {
		return Finalized
	}
	return Default
}

func graphTraversal(s trace.GraphTraversalState, id int) Tag {
	switch {
	case id == s.Current:
		return Active
	case trace.Contains(s.Visited, id):
		return Visited
	case trace.Contains(s.Frontier, id):
		return Frontier
	}
	return Default
}

func shortestPath(s trace.ShortestPathState, id int) Tag {
	switch {
	case trace.Contains(s.Path, id):
		return OnPath
	case id == s.Current:
		return Active
	case id >= 0 && id < len(s.VisitedMask) && s.VisitedMask[id]:
		return Visited
	}
	return Default
}

func mst(s trace.MstState, id int) Tag {
	switch {
	case trace.Contains(s.AcceptedEdges, id):
		return Finalized
	case id == s.CandidateEdge && s.RejectedAsCycle:
		return Visited
	case id == s.CandidateEdge:
		return Comparing
	}
	return Default
}

func matrix(s trace.MatrixState, id int) Tag {
	n := len(s.Dist)
	if n == 0 || s.I == trace.None {
		return Default
	}
	switch id {
	case s.I*n + s.J:
		if s.Updated {
			return Swapped
		}
		return Active
	case s.I*n + s.K, s.K*n + s.J:
		return Comparing
	}
	return Default
}
