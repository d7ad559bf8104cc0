package trace

// Validate checks the generator contract: at least a start and a terminal
// step, indices equal to positions, non-empty messages, non-nil payloads,
// and phases start/event.../done in that order.
func Validate(t *Trace) error {
	n := t.Len()
	if n == 0 {
		return ErrEmptyTrace
	}
	if n < 2 {
		return ErrTooShort
	}
	for i, s := range t.steps {
		if s.Index != i {
			return &StepError{Index: i, Wrapped: ErrIndexMismatch}
		}
		if s.Message == "" {
			return &StepError{Index: i, Wrapped: ErrEmptyMessage}
		}
		if s.State == nil {
			return &StepError{Index: i, Wrapped: ErrNilState}
		}
		want := PhaseEvent
		switch i {
		case 0:
			want = PhaseStart
		case n - 1:
			want = PhaseDone
		}
		if s.Phase != want {
			return &StepError{Index: i, Wrapped: ErrPhase}
		}
	}
	return nil
}
