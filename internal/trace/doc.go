// Package trace provides the data model shared by every algorithm in algoviz.
//
// An algorithm run is recorded once, eagerly, as an ordered sequence of
// immutable steps:
//
//   - [Step]: one point-in-time snapshot plus a human-readable message
//   - [State]: the closed union of per-family payloads carried by a step
//   - [Trace]: the full ordered step sequence for one (algorithm, input) pair
//   - [Recorder]: the builder generators use to append steps in order
//
// # Example
//
//	rec := trace.NewRecorder("bubble_sort")
//	rec.Start(trace.CompareExchangeState{A: trace.None, B: trace.None, Snapshot: values}, "Starting bubble sort")
//	...
//	t := rec.Done(finalState, "Array is sorted")
//
// # Immutability
//
// Slices inside a recorded [State] are owned by the trace. Generators clone
// their working buffers before recording, and callers must treat every slice
// reachable from a [Step] as read-only.
package trace
