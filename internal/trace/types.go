package trace

// Phase marks where a step sits in its trace.
type Phase string

const (
	PhaseStart Phase = "start"
	PhaseEvent Phase = "event"
	PhaseDone  Phase = "done"
)

// Step is one immutable snapshot of algorithm state.
type Step struct {
	Index   int    `json:"index"`
	Phase   Phase  `json:"phase"`
	State   State  `json:"state"`
	Message string `json:"message"`
}

// Terminal reports whether s is the last step of its trace.
func (s Step) Terminal() bool { return s.Phase == PhaseDone }

// Trace is the complete ordered step sequence of one algorithm run. A Trace
// never changes once built; a new input produces a new Trace.
type Trace struct {
	algorithm string
	steps     []Step
}

// New builds a Trace from already-indexed steps. Generators should use a
// Recorder instead.
func New(algorithm string, steps []Step) *Trace {
	s := make([]Step, len(steps))
	copy(s, steps)
	return &Trace{algorithm: algorithm, steps: s}
}

func (t *Trace) Algorithm() string { return t.algorithm }

// Len returns the number of steps; a nil Trace has none.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// At returns the step at position i. It panics when i is out of range.
func (t *Trace) At(i int) Step { return t.steps[i] }

// Last returns the terminal step.
func (t *Trace) Last() Step { return t.steps[len(t.steps)-1] }

// Steps returns a copy of the step slice.
func (t *Trace) Steps() []Step {
	s := make([]Step, len(t.steps))
	copy(s, t.steps)
	return s
}

// Messages returns every step message in order.
func (t *Trace) Messages() []string {
	out := make([]string, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.Message
	}
	return out
}
