package algorithms

import (
	"cmp"
	"math"
	"slices"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type dijkstraRun struct {
	rec     *trace.Recorder
	dist    trace.Distances
	visited []bool
	pred    []int
}

func (r *dijkstraRun) state(current int, path []int) trace.ShortestPathState {
	return trace.ShortestPathState{
		Distances:   slices.Clone(r.dist),
		VisitedMask: slices.Clone(r.visited),
		Current:     current,
		Predecessor: trace.Clone(r.pred),
		Path:        trace.Clone(path),
	}
}

// Dijkstra computes shortest distances from w.Source over undirected,
// non-negative edges and reports the path to w.Target. The unvisited vertex
// with the smallest distance is selected next, lowest index on ties.
func Dijkstra(w input.Weighted) *trace.Trace {
	v := w.Vertices
	r := &dijkstraRun{
		rec:     trace.NewRecorder(NameDijkstra),
		dist:    make(trace.Distances, v),
		visited: make([]bool, v),
		pred:    make([]int, v),
	}
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.pred[i] = trace.None
	}
	r.rec.Start(r.state(trace.None, nil), "Starting Dijkstra from vertex %d", w.Source)

	if v == 0 {
		return r.rec.Done(r.state(trace.None, nil), "Graph is empty, nothing to traverse")
	}
	r.dist[w.Source] = 0

	if v > 1 {
		adj := w.Adjacency()
		for {
			u := trace.None
			best := math.Inf(1)
			for i := 0; i < v; i++ {
				if !r.visited[i] && r.dist[i] < best {
					u, best = i, r.dist[i]
				}
			}
			if u == trace.None {
				break
			}
			r.visited[u] = true
			r.rec.Emit(r.state(u, nil), "Selected vertex %d with distance %s", u, fmtDist(best))

			for _, nb := range adj[u] {
				if r.visited[nb.Vertex] {
					continue
				}
				alt := r.dist[u] + float64(nb.Weight)
				if alt < r.dist[nb.Vertex] {
					r.dist[nb.Vertex] = alt
					r.pred[nb.Vertex] = u
					r.rec.Emit(r.state(u, nil), "Updated distance of %d to %s via %d", nb.Vertex, fmtDist(alt), u)
					continue
				}
				r.rec.Emit(r.state(u, nil), "Edge %d-%d (weight %d) does not improve distance of %d (%s)",
					u, nb.Vertex, nb.Weight, nb.Vertex, fmtDist(r.dist[nb.Vertex]))
			}
		}
	} else {
		r.visited[0] = true
	}

	path := shortestPath(r.pred, w.Source, w.Target)
	if path == nil {
		return r.rec.Done(r.state(trace.None, nil), "Vertex %d is unreachable from %d", w.Target, w.Source)
	}
	return r.rec.Done(r.state(trace.None, path), "Shortest path to %d: %s (distance %s)",
		w.Target, arrows(path), fmtDist(r.dist[w.Target]))
}

func shortestPath(pred []int, source, target int) []int {
	var path []int
	for at := target; at != trace.None; at = pred[at] {
		path = append(path, at)
		if at == source {
			slices.Reverse(path)
			return path
		}
	}
	return nil
}

// Kruskal accepts edges in ascending weight order, earlier input edges first
// on ties, skipping any edge whose endpoints are already connected. It stops
// once a spanning tree is complete.
func Kruskal(w input.Weighted) *trace.Trace {
	order := allIndices(len(w.Edges))
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(w.Edges[a].Weight, w.Edges[b].Weight)
	})

	parent := allIndices(w.Vertices)
	var find func(x int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	var accepted []int
	state := func(candidate int, rejected bool) trace.MstState {
		return trace.MstState{
			CandidateEdge:   candidate,
			AcceptedEdges:   trace.Clone(accepted),
			UnionFind:       trace.Clone(parent),
			RejectedAsCycle: rejected,
		}
	}

	rec := trace.NewRecorder(NameKruskal)
	rec.Start(state(trace.None, false), "Starting Kruskal on %d vertices and %d edges", w.Vertices, len(w.Edges))
	if w.Vertices == 0 {
		return rec.Done(state(trace.None, false), "Graph is empty, nothing to connect")
	}

	total := 0
	if w.Vertices > 1 {
		for _, id := range order {
			if len(accepted) == w.Vertices-1 {
				break
			}
			e := w.Edges[id]
			rec.Emit(state(id, false), "Considering edge %d-%d (weight %d)", e.From, e.To, e.Weight)
			ru, rv := find(e.From), find(e.To)
			if ru == rv {
				rec.Emit(state(id, true), "Rejected edge %d-%d: would form a cycle", e.From, e.To)
				continue
			}
			parent[ru] = rv
			accepted = append(accepted, id)
			total += e.Weight
			rec.Emit(state(id, false), "Accepted edge %d-%d (weight %d)", e.From, e.To, e.Weight)
		}
	}

	if len(accepted) < w.Vertices-1 {
		return rec.Done(state(trace.None, false), "Graph is disconnected: spanning forest has %d edges, total weight %d", len(accepted), total)
	}
	return rec.Done(state(trace.None, false), "MST complete: %d edges, total weight %d", len(accepted), total)
}

// FloydWarshall relaxes every pair (i, j) through every intermediate k.
// Pairs where i, j and k are not distinct cannot change and are skipped, as
// are pairs where dist[i][k] or dist[k][j] is infinite. Snapshots share rows
// with each other; a row is copied before it is written.
func FloydWarshall(w input.Weighted) *trace.Trace {
	v := w.Vertices
	dist := make([]trace.Distances, v)
	for i := range dist {
		dist[i] = make(trace.Distances, v)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, e := range w.Edges {
		if e.From == e.To {
			continue
		}
		wt := float64(e.Weight)
		dist[e.From][e.To] = math.Min(dist[e.From][e.To], wt)
		dist[e.To][e.From] = math.Min(dist[e.To][e.From], wt)
	}

	state := func(k, i, j int, updated bool) trace.MatrixState {
		return trace.MatrixState{K: k, I: i, J: j, Updated: updated, Dist: slices.Clone(dist)}
	}

	rec := trace.NewRecorder(NameFloydWarshall)
	rec.Start(state(trace.None, trace.None, trace.None, false), "Starting Floyd-Warshall on %d vertices", v)
	if v == 0 {
		return rec.Done(state(trace.None, trace.None, trace.None, false), "Graph is empty, nothing to compute")
	}

	if v > 1 {
		for k := 0; k < v; k++ {
			for i := 0; i < v; i++ {
				if i == k || math.IsInf(dist[i][k], 1) {
					continue
				}
				for j := 0; j < v; j++ {
					if i == j || j == k || math.IsInf(dist[k][j], 1) {
						continue
					}
					via := dist[i][k] + dist[k][j]
					if via < dist[i][j] {
						dist[i] = slices.Clone(dist[i])
						dist[i][j] = via
						rec.Emit(state(k, i, j, true), "Updated dist[%d][%d] to %s via %d", i, j, fmtDist(via), k)
						continue
					}
					rec.Emit(state(k, i, j, false), "dist[%d][%d] = %s, no shorter path via %d", i, j, fmtDist(dist[i][j]), k)
				}
			}
		}
	}
	return rec.Done(state(trace.None, trace.None, trace.None, false), "All-pairs shortest paths computed")
}
