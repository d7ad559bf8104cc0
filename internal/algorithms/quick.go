package algorithms

import (
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type quickRun struct {
	rec       *trace.Recorder
	arr       []int
	finalized []int
}

func (r *quickRun) state(pivot, boundary, scan, lo, hi int, swapping bool) trace.PartitionState {
	return trace.PartitionState{
		PivotIndex: pivot,
		Boundary:   boundary,
		ScanIndex:  scan,
		Range:      [2]int{lo, hi},
		Swapping:   swapping,
		Snapshot:   trace.Clone(r.arr),
		Finalized:  trace.Clone(r.finalized),
	}
}

// QuickSort uses Lomuto partitioning with the last element of each range as
// pivot. Boundary is the next slot for an element smaller than the pivot.
func QuickSort(in input.Array) *trace.Trace {
	r := &quickRun{rec: trace.NewRecorder(NameQuickSort), arr: trace.Clone(in.Values)}
	n := len(r.arr)
	r.rec.Start(r.state(trace.None, trace.None, trace.None, 0, n-1, false), "Starting quick sort on %d elements", n)

	if n == 0 {
		return r.rec.Done(r.state(trace.None, trace.None, trace.None, 0, -1, false), "Array is empty, nothing to sort")
	}
	if n > 1 {
		r.sort(0, n-1)
	}
	r.finalized = allIndices(n)
	return r.rec.Done(r.state(trace.None, trace.None, trace.None, 0, n-1, false), "Array is sorted")
}

func (r *quickRun) sort(lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		r.finalized = append(r.finalized, lo)
		return
	}
	p := r.partition(lo, hi)
	r.sort(lo, p-1)
	r.sort(p+1, hi)
}

func (r *quickRun) partition(lo, hi int) int {
	pivot := r.arr[hi]
	i := lo
	r.rec.Emit(r.state(hi, i, trace.None, lo, hi, false), "Partitioning [%d..%d] around pivot %d", lo, hi, pivot)

	for j := lo; j < hi; j++ {
		r.rec.Emit(r.state(hi, i, j, lo, hi, false), "Comparing %d with pivot %d", r.arr[j], pivot)
		if r.arr[j] < pivot {
			if i != j {
				r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
				r.rec.Emit(r.state(hi, i, j, lo, hi, true), "Swapped %d and %d", r.arr[i], r.arr[j])
			}
			i++
		}
	}

	if i != hi {
		r.arr[i], r.arr[hi] = r.arr[hi], r.arr[i]
		r.finalized = append(r.finalized, i)
		r.rec.Emit(r.state(i, i, hi, lo, hi, true), "Placed pivot %d at index %d", pivot, i)
	} else {
		r.finalized = append(r.finalized, i)
	}
	return i
}
