package input

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// MaxVertex is the largest vertex label the edge parsers accept. Weighted
// graphs are sized by their largest label, so labels above it are treated as
// malformed tokens.
const MaxVertex = 63

// ErrInvalidInput is returned when nothing usable remains after dropping
// malformed tokens.
var ErrInvalidInput = errors.New("input: no valid values")

// Options carries the non-textual parts of an input.
type Options struct {
	// Target is the search target for arrays and the destination vertex for
	// weighted graphs. Out-of-range destinations fall back to the last vertex.
	Target int
	// Start is the traversal start node or shortest-path source. Values not
	// present in the graph fall back to the first node.
	Start int
}

// DefaultOptions leaves Start and Target to the per-kind fallbacks.
func DefaultOptions() Options {
	return Options{Target: -1, Start: -1}
}

// Normalizer turns raw text into an Input of one Kind.
type Normalizer struct {
	Kind    Kind
	Options Options
}

func NewNormalizer(kind Kind, opts Options) Normalizer {
	return Normalizer{Kind: kind, Options: opts}
}

// Normalize parses raw. Malformed tokens are dropped silently; an empty
// result is ErrInvalidInput.
func (n Normalizer) Normalize(raw string) (Input, error) {
	switch n.Kind {
	case KindArray:
		values := ParseNumbers(raw)
		if len(values) == 0 {
			return nil, ErrInvalidInput
		}
		return Array{Values: values, Target: n.Options.Target}, nil
	case KindGraph:
		edges := ParseEdges(raw)
		if len(edges) == 0 {
			return nil, ErrInvalidInput
		}
		return NewGraph(edges, n.Options.Start), nil
	case KindWeighted:
		edges := ParseWeightedEdges(raw)
		if len(edges) == 0 {
			return nil, ErrInvalidInput
		}
		return NewWeighted(edges, n.Options.Start, n.Options.Target), nil
	}
	return nil, ErrInvalidInput
}

// NewGraph derives the node set from edges (ascending) and resolves start.
func NewGraph(edges []Edge, start int) Graph {
	seen := make(map[int]bool)
	var nodes []int
	for _, e := range edges {
		for _, v := range [2]int{e.From, e.To} {
			if !seen[v] {
				seen[v] = true
				nodes = append(nodes, v)
			}
		}
	}
	slices.Sort(nodes)
	if !seen[start] {
		start = nodes[0]
	}
	return Graph{Nodes: nodes, Edges: edges, Start: start}
}

// NewWeighted sizes the vertex set from the largest endpoint and resolves
// source and target.
func NewWeighted(edges []WeightedEdge, source, target int) Weighted {
	vertices := 0
	for _, e := range edges {
		vertices = max(vertices, e.From+1, e.To+1)
	}
	if source < 0 || source >= vertices {
		source = 0
	}
	if target < 0 || target >= vertices {
		target = vertices - 1
	}
	return Weighted{Vertices: vertices, Edges: edges, Source: source, Target: target}
}

// ParseNumbers reads comma-separated integers, skipping anything else.
func ParseNumbers(raw string) []int {
	var out []int
	for _, tok := range tokens(raw) {
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParseEdges reads comma-separated "from-to" tokens with ends in
// [0, MaxVertex].
func ParseEdges(raw string) []Edge {
	var out []Edge
	for _, tok := range tokens(raw) {
		from, to, ok := parsePair(tok)
		if !ok {
			continue
		}
		out = append(out, Edge{From: from, To: to})
	}
	return out
}

// ParseWeightedEdges reads comma-separated "from-to:weight" tokens with ends
// in [0, MaxVertex] and non-negative weights.
func ParseWeightedEdges(raw string) []WeightedEdge {
	var out []WeightedEdge
	for _, tok := range tokens(raw) {
		pair, w, found := strings.Cut(tok, ":")
		if !found {
			continue
		}
		from, to, ok := parsePair(strings.TrimSpace(pair))
		if !ok {
			continue
		}
		weight, err := strconv.Atoi(strings.TrimSpace(w))
		if err != nil || weight < 0 {
			continue
		}
		out = append(out, WeightedEdge{From: from, To: to, Weight: weight})
	}
	return out
}

func parsePair(tok string) (int, int, bool) {
	a, b, found := strings.Cut(tok, "-")
	if !found {
		return 0, 0, false
	}
	from, ok := parseVertex(a)
	if !ok {
		return 0, 0, false
	}
	to, ok := parseVertex(b)
	if !ok {
		return 0, 0, false
	}
	return from, to, true
}

func parseVertex(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > MaxVertex {
		return 0, false
	}
	return v, true
}

func tokens(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
