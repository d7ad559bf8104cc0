package metrics

import "github.com/san-kum/algoviz/internal/trace"

// Event is the kind of work a step records.
type Event int

const (
	EventNone Event = iota
	EventCompare
	EventSwap
	EventWrite
	EventVisit
	EventOther
)

func (e Event) String() string {
	switch e {
	case EventCompare:
		return "compare"
	case EventSwap:
		return "swap"
	case EventWrite:
		return "write"
	case EventVisit:
		return "visit"
	case EventOther:
		return "other"
	}
	return "none"
}

// Classifier labels the steps of one trace in order. Some families only
// reveal a visit or an acceptance by comparison with the previous step, so
// a Classifier must see every step and be Reset between traces.
type Classifier struct {
	visited  int
	accepted int
}

func (c *Classifier) Reset() { *c = Classifier{} }

func (c *Classifier) Next(step trace.Step) Event {
	ev := c.classify(step)
	if step.Phase != trace.PhaseEvent {
		return EventNone
	}
	return ev
}

func (c *Classifier) classify(step trace.Step) Event {
	switch s := step.State.(type) {
	case trace.LinearScanState, trace.RangeSearchState:
		return EventCompare
	case trace.CompareExchangeState:
		if s.Swapped {
			return EventSwap
		}
		return EventCompare
	case trace.MergeState:
		if s.Write != trace.None {
			return EventWrite
		}
		return EventCompare
	case trace.PartitionState:
		switch {
		case s.Swapping:
			return EventSwap
		case s.ScanIndex != trace.None:
			return EventCompare
		}
		return EventOther
	case trace.HeapState:
		if s.Swapping != nil {
			return EventSwap
		}
		return EventCompare
	case trace.BucketState:
		return EventWrite
	case trace.GraphTraversalState:
		if c.grew(len(s.Visited)) {
			return EventVisit
		}
		return EventOther
	case trace.ShortestPathState:
		n := 0
		for _, v := range s.VisitedMask {
			if v {
				n++
			}
		}
		if c.grew(n) {
			return EventVisit
		}
		return EventCompare
	case trace.MstState:
		grew := len(s.AcceptedEdges) > c.accepted
		c.accepted = len(s.AcceptedEdges)
		switch {
		case s.RejectedAsCycle:
			return EventOther
		case grew:
			return EventWrite
		}
		return EventCompare
	case trace.MatrixState:
		if s.Updated {
			return EventWrite
		}
		return EventCompare
	}
	return EventOther
}

func (c *Classifier) grew(visited int) bool {
	grew := visited > c.visited
	c.visited = visited
	return grew
}

// CumulativeOps returns, for each step of tr, the number of classified
// operations up to and including it.
func CumulativeOps(tr *trace.Trace) []float64 {
	var cls Classifier
	out := make([]float64, tr.Len())
	total := 0.0
	for i := range tr.Len() {
		if cls.Next(tr.At(i)) != EventNone {
			total++
		}
		out[i] = total
	}
	return out
}
