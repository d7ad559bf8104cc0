package trace

import "fmt"

// Recorder appends steps in order and assigns their indices. It is used by
// one generator run and discarded once Done returns the Trace.
type Recorder struct {
	algorithm string
	steps     []Step
}

func NewRecorder(algorithm string) *Recorder {
	return &Recorder{algorithm: algorithm, steps: make([]Step, 0, 32)}
}

// Start records the neutral "algorithm started" step.
func (r *Recorder) Start(s State, format string, args ...any) {
	r.append(PhaseStart, s, format, args...)
}

// Emit records one semantically meaningful event.
func (r *Recorder) Emit(s State, format string, args ...any) {
	r.append(PhaseEvent, s, format, args...)
}

// Done records the terminal step and returns the finished Trace.
func (r *Recorder) Done(s State, format string, args ...any) *Trace {
	r.append(PhaseDone, s, format, args...)
	t := &Trace{algorithm: r.algorithm, steps: r.steps}
	r.steps = nil
	return t
}

// Len returns the number of steps recorded so far.
func (r *Recorder) Len() int { return len(r.steps) }

func (r *Recorder) append(p Phase, s State, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.steps = append(r.steps, Step{
		Index:   len(r.steps),
		Phase:   p,
		State:   s,
		Message: msg,
	})
}
