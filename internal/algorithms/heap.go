package algorithms

import (
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type heapRun struct {
	rec       *trace.Recorder
	arr       []int
	finalized []int
}

func (r *heapRun) state(size, a, b int, swapping *[2]int) trace.HeapState {
	return trace.HeapState{
		HeapSize:  size,
		NodeA:     a,
		NodeB:     b,
		Swapping:  swapping,
		Snapshot:  trace.Clone(r.arr),
		Finalized: trace.Clone(r.finalized),
	}
}

// HeapSort builds a max-heap in place, then repeatedly moves the root
// behind the shrinking heap.
func HeapSort(in input.Array) *trace.Trace {
	r := &heapRun{rec: trace.NewRecorder(NameHeapSort), arr: trace.Clone(in.Values)}
	n := len(r.arr)
	r.rec.Start(r.state(n, trace.None, trace.None, nil), "Starting heap sort on %d elements", n)

	if n == 0 {
		return r.rec.Done(r.state(0, trace.None, trace.None, nil), "Array is empty, nothing to sort")
	}

	for i := n/2 - 1; i >= 0; i-- {
		r.siftDown(i, n)
	}
	for end := n - 1; end > 0; end-- {
		r.arr[0], r.arr[end] = r.arr[end], r.arr[0]
		r.finalized = append(r.finalized, end)
		r.rec.Emit(r.state(end, 0, end, &[2]int{0, end}), "Moved max %d to index %d", r.arr[end], end)
		r.siftDown(0, end)
	}

	r.finalized = allIndices(n)
	return r.rec.Done(r.state(0, trace.None, trace.None, nil), "Array is sorted")
}

func (r *heapRun) siftDown(i, size int) {
	for {
		largest := i
		if l := 2*i + 1; l < size {
			r.rec.Emit(r.state(size, largest, l, nil), "Comparing %d with left child %d", r.arr[largest], r.arr[l])
			if r.arr[l] > r.arr[largest] {
				largest = l
			}
		}
		if rc := 2*i + 2; rc < size {
			r.rec.Emit(r.state(size, largest, rc, nil), "Comparing %d with right child %d", r.arr[largest], r.arr[rc])
			if r.arr[rc] > r.arr[largest] {
				largest = rc
			}
		}
		if largest == i {
			return
		}
		r.arr[i], r.arr[largest] = r.arr[largest], r.arr[i]
		r.rec.Emit(r.state(size, i, largest, &[2]int{i, largest}), "Swapped %d and %d", r.arr[i], r.arr[largest])
		i = largest
	}
}
