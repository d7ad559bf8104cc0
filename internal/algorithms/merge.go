package algorithms

import (
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type mergeRun struct {
	rec       *trace.Recorder
	arr       []int
	finalized []int
}

func (r *mergeRun) state(lo, mid, hi, a, b, write int) trace.MergeState {
	return trace.MergeState{
		Range:     [2]int{lo, hi},
		Mid:       mid,
		A:         a,
		B:         b,
		Write:     write,
		Snapshot:  trace.Clone(r.arr),
		Finalized: trace.Clone(r.finalized),
	}
}

// MergeSort sorts top-down. A and B in each comparison are the positions the
// two candidates held before the merge began; writes during the outermost
// merge are final.
func MergeSort(in input.Array) *trace.Trace {
	r := &mergeRun{rec: trace.NewRecorder(NameMergeSort), arr: trace.Clone(in.Values)}
	n := len(r.arr)
	r.rec.Start(r.state(0, trace.None, n-1, trace.None, trace.None, trace.None), "Starting merge sort on %d elements", n)

	if n == 0 {
		return r.rec.Done(r.state(0, trace.None, -1, trace.None, trace.None, trace.None), "Array is empty, nothing to sort")
	}
	r.sort(0, n-1)
	r.finalized = allIndices(n)
	return r.rec.Done(r.state(0, trace.None, n-1, trace.None, trace.None, trace.None), "Array is sorted")
}

func (r *mergeRun) sort(lo, hi int) {
	if lo >= hi {
		return
	}
	mid := lo + (hi-lo)/2
	r.sort(lo, mid)
	r.sort(mid+1, hi)
	r.merge(lo, mid, hi)
}

func (r *mergeRun) merge(lo, mid, hi int) {
	left := trace.Clone(r.arr[lo : mid+1])
	right := trace.Clone(r.arr[mid+1 : hi+1])
	outer := lo == 0 && hi == len(r.arr)-1

	i, j, k := 0, 0, lo
	place := func(v int) {
		r.arr[k] = v
		if outer {
			r.finalized = append(r.finalized, k)
		}
		r.rec.Emit(r.state(lo, mid, hi, trace.None, trace.None, k), "Placed %d at index %d", v, k)
		k++
	}

	for i < len(left) && j < len(right) {
		r.rec.Emit(r.state(lo, mid, hi, lo+i, mid+1+j, trace.None), "Comparing %d and %d", left[i], right[j])
		if left[i] <= right[j] {
			place(left[i])
			i++
		} else {
			place(right[j])
			j++
		}
	}
	for ; i < len(left); i++ {
		place(left[i])
	}
	for ; j < len(right); j++ {
		place(right[j])
	}
}
