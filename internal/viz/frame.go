package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/view"
)

// Values returns the array shown by step: the step's own snapshot when it
// carries one, the input values otherwise. ok is false for graph steps.
func Values(step *trace.Step, in input.Input) (values []int, ok bool) {
	if step != nil {
		switch s := step.State.(type) {
		case trace.RangeSearchState:
			return s.Snapshot, true
		case trace.CompareExchangeState:
			return s.Snapshot, true
		case trace.MergeState:
			return s.Snapshot, true
		case trace.PartitionState:
			return s.Snapshot, true
		case trace.HeapState:
			return s.Snapshot, true
		case trace.BucketState:
			return s.Snapshot, true
		}
	}
	if arr, isArr := in.(input.Array); isArr {
		return arr.Values, true
	}
	return nil, false
}

// Frame renders step as a block of styled text sized to width x height
// character cells. Array algorithms are drawn as bars; graph algorithms as
// tagged node, vertex, edge or matrix listings.
func Frame(step *trace.Step, in input.Input, theme Theme, width, height int) string {
	if values, ok := Values(step, in); ok {
		out := bars(step, values, theme, width, height)
		if step != nil {
			if s, isBucket := step.State.(trace.BucketState); isBucket {
				out += "\n" + buckets(s, theme)
			}
		}
		return out
	}
	switch in := in.(type) {
	case input.Graph:
		return graphNodes(step, in, theme)
	case input.Weighted:
		if step == nil {
			return weightedEdges(step, in, theme)
		}
		switch s := step.State.(type) {
		case trace.ShortestPathState:
			return distanceTable(step, s, theme)
		case trace.MatrixState:
			return matrix(step, s, theme)
		}
		return weightedEdges(step, in, theme)
	}
	return lipgloss.NewStyle().Foreground(theme.Muted).Render("(no input)")
}

func bars(step *trace.Step, values []int, theme Theme, width, height int) string {
	c := NewCanvas(width, height)
	tags := view.ProjectAll(step, len(values))
	c.DrawBars(values, tags)

	var labels strings.Builder
	for i, v := range values {
		if i > 0 {
			labels.WriteByte(' ')
		}
		labels.WriteString(theme.TagStyle(tags[i]).Render(fmt.Sprint(v)))
	}
	return c.Render(theme) + labels.String()
}

func buckets(s trace.BucketState, theme Theme) string {
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	var b strings.Builder
	if s.DigitPlace > 0 {
		b.WriteString(muted.Render(fmt.Sprintf("%s, digit place %d", s.Phase, s.DigitPlace)) + "\n")
	} else {
		b.WriteString(muted.Render(string(s.Phase)) + "\n")
	}
	for i, bucket := range s.Buckets {
		if len(bucket) == 0 {
			continue
		}
		key := i
		if i < len(s.Keys) {
			key = s.Keys[i]
		}
		items := make([]string, len(bucket))
		for j, v := range bucket {
			items[j] = fmt.Sprint(v)
		}
		b.WriteString(fmt.Sprintf("%4d │ %s\n", key, strings.Join(items, " ")))
	}
	return b.String()
}

func graphNodes(step *trace.Step, g input.Graph, theme Theme) string {
	var b strings.Builder
	for _, n := range g.Nodes {
		b.WriteString(theme.TagStyle(view.Project(step, n)).Render(fmt.Sprintf("(%d)", n)) + " ")
	}
	b.WriteString("\n")
	if step == nil {
		return b.String()
	}
	if s, ok := step.State.(trace.GraphTraversalState); ok {
		b.WriteString(fmt.Sprintf("\nfrontier %v\nvisited  %v\n", s.Frontier, s.Visited))
	}
	return b.String()
}

func distanceTable(step *trace.Step, s trace.ShortestPathState, theme Theme) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render("vertex  dist  pred") + "\n")
	for v, d := range s.Distances {
		pred := "-"
		if v < len(s.Predecessor) && s.Predecessor[v] != trace.None {
			pred = fmt.Sprint(s.Predecessor[v])
		}
		line := fmt.Sprintf("%6d  %4s  %4s", v, formatDist(d), pred)
		b.WriteString(theme.TagStyle(view.Project(step, v)).Render(line) + "\n")
	}
	if len(s.Path) > 0 {
		b.WriteString(fmt.Sprintf("\npath %v\n", s.Path))
	}
	return b.String()
}

func weightedEdges(step *trace.Step, w input.Weighted, theme Theme) string {
	var b strings.Builder
	for i, e := range w.Edges {
		line := fmt.Sprintf("%2d-%-2d w=%d", e.From, e.To, e.Weight)
		b.WriteString(theme.TagStyle(view.Project(step, i)).Render(line) + "\n")
	}
	return b.String()
}

func matrix(step *trace.Step, s trace.MatrixState, theme Theme) string {
	n := len(s.Dist)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(fmt.Sprintf("k = %d", s.K)) + "\n")
	for i := range n {
		for j := range n {
			cell := fmt.Sprintf("%5s", formatDist(s.Dist[i][j]))
			b.WriteString(theme.TagStyle(view.Project(step, i*n+j)).Render(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatDist(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return fmt.Sprint(d)
}
