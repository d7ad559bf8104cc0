package algorithms

import (
	"math"
	"strconv"
	"strings"
)

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func arrows(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " → ")
}

func fmtDist(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func cloneBuckets(b [][]int) [][]int {
	out := make([][]int, len(b))
	for i, bucket := range b {
		out[i] = make([]int, len(bucket))
		copy(out[i], bucket)
	}
	return out
}
