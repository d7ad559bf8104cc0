package trace

import (
	"bytes"
	"math"
	"strconv"
)

// None marks an absent index, node or predecessor.
const None = -1

// Kind identifies the algorithm family a State belongs to.
type Kind string

const (
	KindLinearScan      Kind = "linear_scan"
	KindRangeSearch     Kind = "range_search"
	KindCompareExchange Kind = "compare_exchange"
	KindMerge           Kind = "merge"
	KindPartition       Kind = "partition"
	KindHeap            Kind = "heap"
	KindBucket          Kind = "bucket"
	KindGraphTraversal  Kind = "graph_traversal"
	KindShortestPath    Kind = "shortest_path"
	KindMst             Kind = "mst"
	KindMatrix          Kind = "matrix"
)

// Kinds returns every member of the closed State union.
func Kinds() []Kind {
	return []Kind{
		KindLinearScan,
		KindRangeSearch,
		KindCompareExchange,
		KindMerge,
		KindPartition,
		KindHeap,
		KindBucket,
		KindGraphTraversal,
		KindShortestPath,
		KindMst,
		KindMatrix,
	}
}

// State is the algorithm-specific payload of a Step. The set of
// implementations is closed; see Kinds.
type State interface {
	Kind() Kind
	sealed()
}

// BucketPhase is the stage of a distribution sort pass.
type BucketPhase string

const (
	PhaseDistribute BucketPhase = "distribute"
	PhaseCollect    BucketPhase = "collect"
)

type LinearScanState struct {
	Index   int  `json:"index"`
	Matched bool `json:"matched"`
}

// RangeSearchState is a binary search probe over Snapshot, which is the
// sorted copy of the input.
type RangeSearchState struct {
	Low      int   `json:"low"`
	High     int   `json:"high"`
	Mid      int   `json:"mid"`
	Matched  bool  `json:"matched"`
	Snapshot []int `json:"snapshot"`
}

type CompareExchangeState struct {
	A         int   `json:"a"`
	B         int   `json:"b"`
	Swapped   bool  `json:"swapped"`
	Snapshot  []int `json:"snapshot"`
	Finalized []int `json:"finalized"`
}

// MergeState describes one comparison or write while merging
// Snapshot[Range[0]..Range[1]] around Mid.
type MergeState struct {
	Range     [2]int `json:"range"`
	Mid       int    `json:"mid"`
	A         int    `json:"a"`
	B         int    `json:"b"`
	Write     int    `json:"write"`
	Snapshot  []int  `json:"snapshot"`
	Finalized []int  `json:"finalized"`
}

type PartitionState struct {
	PivotIndex int    `json:"pivot_index"`
	Boundary   int    `json:"boundary"`
	ScanIndex  int    `json:"scan_index"`
	Range      [2]int `json:"range"`
	Swapping   bool   `json:"swapping"`
	Snapshot   []int  `json:"snapshot"`
	Finalized  []int  `json:"finalized"`
}

type HeapState struct {
	HeapSize  int     `json:"heap_size"`
	NodeA     int     `json:"node_a"`
	NodeB     int     `json:"node_b"`
	Swapping  *[2]int `json:"swapping,omitempty"`
	Snapshot  []int   `json:"snapshot"`
	Finalized []int   `json:"finalized"`
}

// BucketState is a counting or radix sort step. Keys labels Buckets
// position by position.
type BucketState struct {
	DigitPlace uint64      `json:"digit_place"`
	Phase      BucketPhase `json:"phase"`
	Keys       []int       `json:"keys"`
	Buckets    [][]int     `json:"buckets"`
	Snapshot   []int       `json:"snapshot"`
	Finalized  []int       `json:"finalized"`
}

// GraphTraversalState is shared by BFS (Frontier is a queue, head first)
// and DFS (Frontier is a stack, top last).
type GraphTraversalState struct {
	Current  int   `json:"current"`
	Frontier []int `json:"frontier"`
	Visited  []int `json:"visited"`
}

type ShortestPathState struct {
	Distances   Distances `json:"distances"`
	VisitedMask []bool    `json:"visited_mask"`
	Current     int       `json:"current"`
	Predecessor []int     `json:"predecessor"`
	Path        []int     `json:"path"`
}

// EdgeID is the position of an edge in the normalized input edge list.
type EdgeID = int

type MstState struct {
	CandidateEdge   EdgeID   `json:"candidate_edge"`
	AcceptedEdges   []EdgeID `json:"accepted_edges"`
	UnionFind       []int    `json:"union_find"`
	RejectedAsCycle bool     `json:"rejected_as_cycle"`
}

// MatrixState is one Floyd-Warshall relaxation of Dist[I][J] through K.
type MatrixState struct {
	K       int         `json:"k"`
	I       int         `json:"i"`
	J       int         `json:"j"`
	Updated bool        `json:"updated"`
	Dist    []Distances `json:"dist"`
}

func (LinearScanState) Kind() Kind      { return KindLinearScan }
func (RangeSearchState) Kind() Kind     { return KindRangeSearch }
func (CompareExchangeState) Kind() Kind { return KindCompareExchange }
func (MergeState) Kind() Kind           { return KindMerge }
func (PartitionState) Kind() Kind       { return KindPartition }
func (HeapState) Kind() Kind            { return KindHeap }
func (BucketState) Kind() Kind          { return KindBucket }
func (GraphTraversalState) Kind() Kind  { return KindGraphTraversal }
func (ShortestPathState) Kind() Kind    { return KindShortestPath }
func (MstState) Kind() Kind             { return KindMst }
func (MatrixState) Kind() Kind          { return KindMatrix }

func (LinearScanState) sealed()      {}
func (RangeSearchState) sealed()     {}
func (CompareExchangeState) sealed() {}
func (MergeState) sealed()           {}
func (PartitionState) sealed()       {}
func (HeapState) sealed()            {}
func (BucketState) sealed()          {}
func (GraphTraversalState) sealed()  {}
func (ShortestPathState) sealed()    {}
func (MstState) sealed()             {}
func (MatrixState) sealed()          {}

// Distances holds path lengths; +Inf means unreachable and encodes as null.
type Distances []float64

func (d Distances) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// Contains reports whether v is in s.
func Contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of s. A nil slice clones to an empty one
// so recorded payloads never carry nil collections.
func Clone(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}
