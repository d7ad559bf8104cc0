package algorithms

import (
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

// exchangeRun holds the working array of a compare-exchange sort and the
// indices already known to be in their final position.
type exchangeRun struct {
	rec       *trace.Recorder
	arr       []int
	finalized []int
}

func newExchangeRun(name string, values []int) *exchangeRun {
	return &exchangeRun{rec: trace.NewRecorder(name), arr: trace.Clone(values)}
}

func (r *exchangeRun) state(a, b int, swapped bool) trace.CompareExchangeState {
	return trace.CompareExchangeState{
		A:         a,
		B:         b,
		Swapped:   swapped,
		Snapshot:  trace.Clone(r.arr),
		Finalized: trace.Clone(r.finalized),
	}
}

func (r *exchangeRun) swap(i, j int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
}

func (r *exchangeRun) done() *trace.Trace {
	if len(r.arr) == 0 {
		return r.rec.Done(r.state(trace.None, trace.None, false), "Array is empty, nothing to sort")
	}
	r.finalized = allIndices(len(r.arr))
	return r.rec.Done(r.state(trace.None, trace.None, false), "Array is sorted")
}

// BubbleSort repeatedly swaps adjacent out-of-order pairs. Each pass settles
// the largest remaining element at the end; a pass without swaps ends the
// sort early.
func BubbleSort(in input.Array) *trace.Trace {
	r := newExchangeRun(NameBubbleSort, in.Values)
	n := len(r.arr)
	r.rec.Start(r.state(trace.None, trace.None, false), "Starting bubble sort on %d elements", n)

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			r.rec.Emit(r.state(j, j+1, false), "Comparing %d and %d", r.arr[j], r.arr[j+1])
			if r.arr[j] > r.arr[j+1] {
				r.swap(j, j+1)
				swapped = true
				r.rec.Emit(r.state(j, j+1, true), "Swapped %d and %d", r.arr[j+1], r.arr[j])
			}
		}
		r.finalized = append(r.finalized, n-1-i)
		if !swapped {
			break
		}
	}
	return r.done()
}

// InsertionSort sinks each element left through the sorted prefix by
// adjacent swaps.
func InsertionSort(in input.Array) *trace.Trace {
	r := newExchangeRun(NameInsertionSort, in.Values)
	n := len(r.arr)
	r.rec.Start(r.state(trace.None, trace.None, false), "Starting insertion sort on %d elements", n)

	for i := 1; i < n; i++ {
		for j := i; j > 0; j-- {
			r.rec.Emit(r.state(j-1, j, false), "Comparing %d and %d", r.arr[j-1], r.arr[j])
			if r.arr[j-1] <= r.arr[j] {
				break
			}
			r.swap(j-1, j)
			r.rec.Emit(r.state(j-1, j, true), "Moved %d before %d", r.arr[j-1], r.arr[j])
		}
	}
	return r.done()
}

// SelectionSort finds the minimum of the unsorted suffix and swaps it into
// place, settling one index per pass.
func SelectionSort(in input.Array) *trace.Trace {
	r := newExchangeRun(NameSelectionSort, in.Values)
	n := len(r.arr)
	r.rec.Start(r.state(trace.None, trace.None, false), "Starting selection sort on %d elements", n)

	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.rec.Emit(r.state(minIdx, j, false), "Comparing current minimum %d with %d", r.arr[minIdx], r.arr[j])
			if r.arr[j] < r.arr[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			r.swap(i, minIdx)
			r.rec.Emit(r.state(i, minIdx, true), "Swapped %d into position %d", r.arr[i], i)
		}
		r.finalized = append(r.finalized, i)
	}
	return r.done()
}
