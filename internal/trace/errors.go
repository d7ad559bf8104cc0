package trace

import (
	"errors"
	"fmt"
)

// Contract violations detected by Validate.
var (
	// ErrEmptyTrace indicates a generator produced no steps at all.
	ErrEmptyTrace = errors.New("trace: empty trace")

	// ErrTooShort indicates a trace without both a start and a terminal step.
	ErrTooShort = errors.New("trace: fewer than two steps")

	// ErrIndexMismatch indicates a step whose index differs from its position.
	ErrIndexMismatch = errors.New("trace: step index does not match position")

	// ErrEmptyMessage indicates a step recorded without a message.
	ErrEmptyMessage = errors.New("trace: step has empty message")

	// ErrPhase indicates a start/event/done phase out of place.
	ErrPhase = errors.New("trace: step phase out of order")

	// ErrNilState indicates a step recorded without a payload.
	ErrNilState = errors.New("trace: step has nil state")
)

// ErrUnknownKind indicates a decoded step names no known state family.
var ErrUnknownKind = errors.New("trace: unknown state kind")

// StepError wraps a contract violation with the offending step.
type StepError struct {
	Index   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
