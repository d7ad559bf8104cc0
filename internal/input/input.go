// Package input defines the normalized inputs accepted by trace generators
// and the normalizer that produces them from user-edited text.
package input

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the shape of a normalized input.
type Kind string

const (
	KindArray    Kind = "array"
	KindGraph    Kind = "graph"
	KindWeighted Kind = "weighted"
)

// Input is a validated, structured generator input.
type Input interface {
	Kind() Kind
	Equal(other Input) bool
	String() string
}

// Array is a list of integers plus the search target (ignored by sorts).
type Array struct {
	Values []int
	Target int
}

type Edge struct {
	From, To int
}

// Graph is an unweighted, undirected graph with a traversal start node.
type Graph struct {
	Nodes []int
	Edges []Edge
	Start int
}

type WeightedEdge struct {
	From, To, Weight int
}

// Weighted is an undirected weighted graph over vertices 0..Vertices-1.
// Source and Target are used by shortest-path algorithms only.
type Weighted struct {
	Vertices int
	Edges    []WeightedEdge
	Source   int
	Target   int
}

func (Array) Kind() Kind    { return KindArray }
func (Graph) Kind() Kind    { return KindGraph }
func (Weighted) Kind() Kind { return KindWeighted }

func (a Array) Equal(other Input) bool {
	o, ok := other.(Array)
	return ok && a.Target == o.Target && slices.Equal(a.Values, o.Values)
}

func (g Graph) Equal(other Input) bool {
	o, ok := other.(Graph)
	return ok && g.Start == o.Start && slices.Equal(g.Nodes, o.Nodes) && slices.Equal(g.Edges, o.Edges)
}

func (w Weighted) Equal(other Input) bool {
	o, ok := other.(Weighted)
	return ok && w.Vertices == o.Vertices && w.Source == o.Source && w.Target == o.Target &&
		slices.Equal(w.Edges, o.Edges)
}

func (a Array) String() string {
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (g Graph) String() string {
	parts := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		parts[i] = fmt.Sprintf("%d-%d", e.From, e.To)
	}
	return strings.Join(parts, ",")
}

func (w Weighted) String() string {
	parts := make([]string, len(w.Edges))
	for i, e := range w.Edges {
		parts[i] = fmt.Sprintf("%d-%d:%d", e.From, e.To, e.Weight)
	}
	return strings.Join(parts, ",")
}

// Adjacency returns the undirected neighbour lists of g. Neighbours appear
// in the order their edges appear in g.Edges; each edge contributes to both
// endpoints. Self-loops contribute once.
func (g Graph) Adjacency() map[int][]int {
	adj := make(map[int][]int, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n] = nil
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		if e.From != e.To {
			adj[e.To] = append(adj[e.To], e.From)
		}
	}
	return adj
}

// Neighbor is one entry of a weighted adjacency list.
type Neighbor struct {
	Vertex int
	Weight int
	Edge   int
}

// Adjacency returns the undirected weighted neighbour lists of w, indexed by
// vertex, in edge-list order.
func (w Weighted) Adjacency() [][]Neighbor {
	adj := make([][]Neighbor, w.Vertices)
	for i, e := range w.Edges {
		adj[e.From] = append(adj[e.From], Neighbor{Vertex: e.To, Weight: e.Weight, Edge: i})
		if e.From != e.To {
			adj[e.To] = append(adj[e.To], Neighbor{Vertex: e.From, Weight: e.Weight, Edge: i})
		}
	}
	return adj
}
