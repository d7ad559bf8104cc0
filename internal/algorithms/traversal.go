package algorithms

import (
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
)

type traversalRun struct {
	rec      *trace.Recorder
	frontier []int
	visited  []int
}

func (r *traversalRun) state(current int) trace.GraphTraversalState {
	return trace.GraphTraversalState{
		Current:  current,
		Frontier: trace.Clone(r.frontier),
		Visited:  trace.Clone(r.visited),
	}
}

// BFS visits nodes in queue order, marking a node discovered when it is
// enqueued so it is never queued twice.
func BFS(g input.Graph) *trace.Trace {
	r := &traversalRun{rec: trace.NewRecorder(NameBFS)}
	r.rec.Start(r.state(trace.None), "Starting BFS from node %d", g.Start)

	switch len(g.Nodes) {
	case 0:
		return r.rec.Done(r.state(trace.None), "Graph is empty, nothing to traverse")
	case 1:
		r.visited = []int{g.Start}
		return r.rec.Done(r.state(trace.None), "BFS traversal completed. Visited order: %s", arrows(r.visited))
	}

	adj := g.Adjacency()
	discovered := map[int]bool{g.Start: true}
	r.frontier = append(r.frontier, g.Start)
	r.rec.Emit(r.state(trace.None), "Enqueued start node %d", g.Start)

	for len(r.frontier) > 0 {
		cur := r.frontier[0]
		r.frontier = r.frontier[1:]
		r.visited = append(r.visited, cur)
		r.rec.Emit(r.state(cur), "Visiting node %d", cur)

		for _, nb := range adj[cur] {
			if discovered[nb] {
				continue
			}
			discovered[nb] = true
			r.frontier = append(r.frontier, nb)
			r.rec.Emit(r.state(cur), "Discovered node %d from %d, added to queue", nb, cur)
		}
	}
	return r.rec.Done(r.state(trace.None), "BFS traversal completed. Visited order: %s", arrows(r.visited))
}

// DFS uses an explicit stack. Neighbours are pushed in reverse adjacency
// order so they are popped, and therefore visited, in adjacency order. A
// node may sit on the stack more than once; stale entries are discarded
// when popped.
func DFS(g input.Graph) *trace.Trace {
	r := &traversalRun{rec: trace.NewRecorder(NameDFS)}
	r.rec.Start(r.state(trace.None), "Starting DFS from node %d", g.Start)

	switch len(g.Nodes) {
	case 0:
		return r.rec.Done(r.state(trace.None), "Graph is empty, nothing to traverse")
	case 1:
		r.visited = []int{g.Start}
		return r.rec.Done(r.state(trace.None), "DFS traversal completed. Visited order: %s", arrows(r.visited))
	}

	adj := g.Adjacency()
	seen := make(map[int]bool, len(g.Nodes))
	r.frontier = append(r.frontier, g.Start)
	r.rec.Emit(r.state(trace.None), "Pushed start node %d onto stack", g.Start)

	for len(r.frontier) > 0 {
		top := len(r.frontier) - 1
		cur := r.frontier[top]
		r.frontier = r.frontier[:top]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		r.visited = append(r.visited, cur)
		r.rec.Emit(r.state(cur), "Visiting node %d", cur)

		nbs := adj[cur]
		for i := len(nbs) - 1; i >= 0; i-- {
			nb := nbs[i]
			if seen[nb] {
				continue
			}
			r.frontier = append(r.frontier, nb)
			r.rec.Emit(r.state(cur), "Pushed node %d onto stack", nb)
		}
	}
	return r.rec.Done(r.state(trace.None), "DFS traversal completed. Visited order: %s", arrows(r.visited))
}
