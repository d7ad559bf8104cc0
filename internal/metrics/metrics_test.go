package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/algoviz/internal/trace"
)

func observeAll(t *trace.Trace, ms ...interface{ Observe(trace.Step) }) {
	for _, s := range t.Steps() {
		for _, m := range ms {
			m.Observe(s)
		}
	}
}

func exchangeTrace() *trace.Trace {
	rec := trace.NewRecorder("bubble_sort")
	rec.Start(trace.CompareExchangeState{A: trace.None, B: trace.None}, "start")
	rec.Emit(trace.CompareExchangeState{A: 0, B: 1}, "compare")
	rec.Emit(trace.CompareExchangeState{A: 0, B: 1, Swapped: true}, "swap")
	rec.Emit(trace.CompareExchangeState{A: 1, B: 2}, "compare")
	return rec.Done(trace.CompareExchangeState{A: trace.None, B: trace.None}, "done")
}

func TestCounters(t *testing.T) {
	cmp, swp, steps := NewComparisons(), NewSwaps(), NewSteps()
	observeAll(exchangeTrace(), cmp, swp, steps)

	if cmp.Value() != 2 {
		t.Errorf("comparisons = %v, want 2", cmp.Value())
	}
	if swp.Value() != 1 {
		t.Errorf("swaps = %v, want 1", swp.Value())
	}
	if steps.Value() != 5 {
		t.Errorf("steps = %v, want 5", steps.Value())
	}

	cmp.Reset()
	steps.Reset()
	if cmp.Value() != 0 || steps.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestCumulativeOps(t *testing.T) {
	got := CumulativeOps(exchangeTrace())
	want := []float64{0, 1, 2, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVisitsCountGrowth(t *testing.T) {
	rec := trace.NewRecorder("bfs")
	rec.Start(trace.GraphTraversalState{Current: trace.None}, "start")
	rec.Emit(trace.GraphTraversalState{Current: trace.None, Frontier: []int{1}}, "enqueue")
	rec.Emit(trace.GraphTraversalState{Current: 1, Visited: []int{1}}, "visit 1")
	rec.Emit(trace.GraphTraversalState{Current: 1, Frontier: []int{2}, Visited: []int{1}}, "discover 2")
	rec.Emit(trace.GraphTraversalState{Current: 2, Visited: []int{1, 2}}, "visit 2")
	tr := rec.Done(trace.GraphTraversalState{Current: trace.None, Visited: []int{1, 2}}, "done")

	v := NewVisits()
	observeAll(tr, v)
	if v.Value() != 2 {
		t.Errorf("visits = %v, want 2", v.Value())
	}
}

func TestClassifyMst(t *testing.T) {
	var c Classifier
	steps := []struct {
		state trace.MstState
		want  Event
	}{
		{trace.MstState{CandidateEdge: 0}, EventCompare},
		{trace.MstState{CandidateEdge: 0, AcceptedEdges: []int{0}}, EventWrite},
		{trace.MstState{CandidateEdge: 1, AcceptedEdges: []int{0}}, EventCompare},
		{trace.MstState{CandidateEdge: 1, AcceptedEdges: []int{0}, RejectedAsCycle: true}, EventOther},
	}
	for i, s := range steps {
		got := c.Next(trace.Step{Index: i + 1, Phase: trace.PhaseEvent, State: s.state, Message: "x"})
		if got != s.want {
			t.Errorf("step %d: got %s, want %s", i, got, s.want)
		}
	}
}

func TestClassifyIgnoresStartAndDone(t *testing.T) {
	var c Classifier
	for _, p := range []trace.Phase{trace.PhaseStart, trace.PhaseDone} {
		ev := c.Next(trace.Step{Phase: p, State: trace.CompareExchangeState{A: 0, B: 1}, Message: "x"})
		if ev != EventNone {
			t.Errorf("%s step classified as %s", p, ev)
		}
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.ObserveGeneration("bfs", 12, time.Millisecond)
	c.ObserveGeneration("bfs", 8, time.Millisecond)
	c.ObserveRejected()
	c.ObserveTransition("playing")

	if got := testutil.ToFloat64(c.generations.WithLabelValues("bfs")); got != 2 {
		t.Errorf("generations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.steps.WithLabelValues("bfs")); got != 20 {
		t.Errorf("steps = %v, want 20", got)
	}

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap["algoviz_inputs_rejected_total"] != 1 {
		t.Errorf("rejected = %v", snap["algoviz_inputs_rejected_total"])
	}
	if snap["algoviz_playback_transitions_total{mode=playing}"] != 1 {
		t.Errorf("snapshot = %v", snap)
	}
	if snap["algoviz_generation_seconds{algorithm=bfs}_count"] != 2 {
		t.Errorf("histogram count missing: %v", snap)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveGeneration("x", 1, 0)
	c.ObserveRejected()
	c.ObserveTransition("idle")
	if snap, err := c.Snapshot(); snap != nil || err != nil {
		t.Error("nil collector should be inert")
	}
}
