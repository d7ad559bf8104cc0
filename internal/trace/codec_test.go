package trace

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestStepJSONRoundTrip(t *testing.T) {
	states := []State{
		LinearScanState{Index: 3, Matched: true},
		RangeSearchState{Low: 0, High: 4, Mid: 2, Snapshot: []int{1, 2, 3, 4, 5}},
		CompareExchangeState{A: 0, B: 1, Swapped: true, Snapshot: []int{2, 1}, Finalized: []int{}},
		MergeState{Range: [2]int{0, 3}, Mid: 1, A: 0, B: 2, Write: None, Snapshot: []int{4, 3, 2, 1}, Finalized: []int{}},
		PartitionState{PivotIndex: 3, Boundary: 0, ScanIndex: 1, Range: [2]int{0, 3}, Snapshot: []int{1, 2, 3, 4}, Finalized: []int{}},
		HeapState{HeapSize: 3, NodeA: 0, NodeB: 2, Swapping: &[2]int{0, 2}, Snapshot: []int{1, 2, 3}, Finalized: []int{}},
		BucketState{DigitPlace: 10, Phase: PhaseCollect, Keys: []int{0, 1}, Buckets: [][]int{{10}, {}}, Snapshot: []int{10}, Finalized: []int{0}},
		GraphTraversalState{Current: 2, Frontier: []int{3}, Visited: []int{1, 2}},
		ShortestPathState{Distances: Distances{0, math.Inf(1)}, VisitedMask: []bool{true, false}, Current: 0, Predecessor: []int{None, None}, Path: []int{}},
		MstState{CandidateEdge: 1, AcceptedEdges: []int{0}, UnionFind: []int{0, 0, 2}},
		MatrixState{K: 0, I: 1, J: 2, Updated: true, Dist: []Distances{{0, 1}, {1, math.Inf(1)}}},
	}
	if len(states) != len(Kinds()) {
		t.Fatalf("test covers %d kinds, union has %d", len(states), len(Kinds()))
	}

	for i, st := range states {
		in := Step{Index: i, Phase: PhaseEvent, State: st, Message: "m"}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", st.Kind(), err)
		}
		var out Step
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", st.Kind(), err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("%s: round trip = %+v, want %+v", st.Kind(), out, in)
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := DecodeState("bogus", []byte("{}"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDistancesUnmarshalNull(t *testing.T) {
	var d Distances
	if err := json.Unmarshal([]byte("[1,null,2.5]"), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d[0] != 1 || !math.IsInf(d[1], 1) || d[2] != 2.5 {
		t.Errorf("got %v", d)
	}
}
