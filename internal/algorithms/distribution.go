package algorithms

import (
	"slices"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type bucketRun struct {
	rec       *trace.Recorder
	arr       []int
	keys      []int
	buckets   [][]int
	finalized []int
}

func (r *bucketRun) state(place uint64, phase trace.BucketPhase) trace.BucketState {
	return trace.BucketState{
		DigitPlace: place,
		Phase:      phase,
		Keys:       r.keys,
		Buckets:    cloneBuckets(r.buckets),
		Snapshot:   trace.Clone(r.arr),
		Finalized:  trace.Clone(r.finalized),
	}
}

// CountingSort tallies every value into a bucket keyed by that value, then
// writes the buckets back in key order. Buckets exist only for values that
// occur, so storage follows the input size rather than its range. DigitPlace
// is always 0.
func CountingSort(in input.Array) *trace.Trace {
	r := &bucketRun{rec: trace.NewRecorder(NameCountingSort), arr: trace.Clone(in.Values)}
	n := len(r.arr)

	r.keys = trace.Clone(r.arr)
	slices.Sort(r.keys)
	r.keys = slices.Compact(r.keys)
	r.buckets = make([][]int, len(r.keys))
	slot := make(map[int]int, len(r.keys))
	for i, k := range r.keys {
		slot[k] = i
	}

	r.rec.Start(r.state(0, trace.PhaseDistribute), "Starting counting sort on %d elements with %d distinct keys", n, len(r.keys))
	if n == 0 {
		return r.rec.Done(r.state(0, trace.PhaseCollect), "Array is empty, nothing to sort")
	}
	if n == 1 {
		r.finalized = allIndices(n)
		return r.rec.Done(r.state(0, trace.PhaseCollect), "Array is sorted")
	}

	for _, v := range r.arr {
		b := slot[v]
		r.buckets[b] = append(r.buckets[b], v)
		r.rec.Emit(r.state(0, trace.PhaseDistribute), "Counted %d into bucket %d", v, v)
	}

	k := 0
	for b := range r.buckets {
		for len(r.buckets[b]) > 0 {
			v := r.buckets[b][0]
			r.buckets[b] = r.buckets[b][1:]
			r.arr[k] = v
			r.finalized = append(r.finalized, k)
			r.rec.Emit(r.state(0, trace.PhaseCollect), "Wrote %d to index %d", v, k)
			k++
		}
	}
	return r.rec.Done(r.state(0, trace.PhaseCollect), "Array is sorted")
}

// RadixSort is an LSD base-10 sort. Keys are the values shifted by the
// minimum into uint64, which holds the full spread of any int64 input; the
// snapshot always shows the original values.
func RadixSort(in input.Array) *trace.Trace {
	r := &bucketRun{
		rec:  trace.NewRecorder(NameRadixSort),
		arr:  trace.Clone(in.Values),
		keys: allIndices(10),
	}
	n := len(r.arr)
	r.buckets = make([][]int, 10)

	r.rec.Start(r.state(1, trace.PhaseDistribute), "Starting radix sort on %d elements", n)
	if n == 0 {
		return r.rec.Done(r.state(1, trace.PhaseCollect), "Array is empty, nothing to sort")
	}

	lo := slices.Min(r.arr)
	maxKey := radixKey(slices.Max(r.arr), lo)

	if n > 1 && maxKey > 0 {
		for place := uint64(1); ; place *= 10 {
			last := place > maxKey/10
			r.pass(place, lo, last)
			if last {
				break
			}
		}
	}

	r.finalized = allIndices(n)
	return r.rec.Done(r.state(1, trace.PhaseCollect), "Array is sorted")
}

// radixKey is v's distance above lo. Two's complement subtraction in uint64
// is exact for any lo <= v.
func radixKey(v, lo int) uint64 {
	return uint64(v) - uint64(lo)
}

func (r *bucketRun) pass(place uint64, lo int, last bool) {
	for _, v := range r.arr {
		d := int(radixKey(v, lo) / place % 10)
		r.buckets[d] = append(r.buckets[d], v)
		r.rec.Emit(r.state(place, trace.PhaseDistribute), "Placed %d into bucket %d (digit place %d)", v, d, place)
	}
	k := 0
	for d := range r.buckets {
		for len(r.buckets[d]) > 0 {
			v := r.buckets[d][0]
			r.buckets[d] = r.buckets[d][1:]
			r.arr[k] = v
			if last {
				r.finalized = append(r.finalized, k)
			}
			r.rec.Emit(r.state(place, trace.PhaseCollect), "Collected %d from bucket %d into index %d", v, d, k)
			k++
		}
	}
}
