package algorithms

import (
	"slices"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

// LinearSearch scans left to right and stops at the first match.
func LinearSearch(in input.Array) *trace.Trace {
	values, target := in.Values, in.Target
	rec := trace.NewRecorder(NameLinearSearch)
	rec.Start(trace.LinearScanState{Index: trace.None}, "Starting linear search for %d in %d elements", target, len(values))

	switch len(values) {
	case 0:
		return rec.Done(trace.LinearScanState{Index: trace.None}, "Array is empty, nothing to search")
	case 1:
		if values[0] == target {
			return rec.Done(trace.LinearScanState{Index: 0, Matched: true}, "Found %d at index 0", target)
		}
		return rec.Done(trace.LinearScanState{Index: trace.None}, "%d not found in array", target)
	}

	for i, v := range values {
		if v == target {
			rec.Emit(trace.LinearScanState{Index: i, Matched: true}, "Checking index %d: %d equals target %d", i, v, target)
			return rec.Done(trace.LinearScanState{Index: i, Matched: true}, "Found %d at index %d", target, i)
		}
		rec.Emit(trace.LinearScanState{Index: i}, "Checking index %d: %d does not equal %d", i, v, target)
	}
	return rec.Done(trace.LinearScanState{Index: trace.None}, "%d not found in array", target)
}

// BinarySearch sorts a copy of the input and halves the search range on
// every probe. Reported indices refer to the sorted copy.
func BinarySearch(in input.Array) *trace.Trace {
	sorted := trace.Clone(in.Values)
	slices.Sort(sorted)
	target := in.Target
	n := len(sorted)

	state := func(low, high, mid int, matched bool) trace.RangeSearchState {
		return trace.RangeSearchState{Low: low, High: high, Mid: mid, Matched: matched, Snapshot: sorted}
	}

	rec := trace.NewRecorder(NameBinarySearch)
	rec.Start(state(0, n-1, trace.None, false), "Starting binary search for %d in sorted array of %d elements", target, n)

	switch n {
	case 0:
		return rec.Done(state(0, -1, trace.None, false), "Array is empty, nothing to search")
	case 1:
		if sorted[0] == target {
			return rec.Done(state(0, 0, 0, true), "Found %d at index 0", target)
		}
		return rec.Done(state(0, 0, trace.None, false), "%d not found in array", target)
	}

	low, high := 0, n-1
	for low <= high {
		mid := low + (high-low)/2
		v := sorted[mid]
		switch {
		case v == target:
			rec.Emit(state(low, high, mid, true), "Checking middle index %d: %d equals target", mid, v)
			return rec.Done(state(low, high, mid, true), "Found %d at index %d", target, mid)
		case v < target:
			rec.Emit(state(low, high, mid, false), "Checking middle index %d: %d < %d, searching right half", mid, v, target)
			low = mid + 1
		default:
			rec.Emit(state(low, high, mid, false), "Checking middle index %d: %d > %d, searching left half", mid, v, target)
			high = mid - 1
		}
	}
	return rec.Done(state(low, high, trace.None, false), "%d not found in array", target)
}
