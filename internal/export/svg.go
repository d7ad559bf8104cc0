// Package export renders playback frames as standalone SVG documents.
package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/view"
	"github.com/san-kum/algoviz/internal/viz"
)

const (
	margin    = 24.0
	nodeR     = 14.0
	fontSize  = 12
	titleSize = 14
)

// CanvasToSVG converts a Braille canvas to SVG format. Each dot takes the
// theme color of its cell's tag.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(header(width, height, string(theme.Background)))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := theme.TagColor(canvas.Tags[row][col])

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline over the step axis, e.g. the
// running operation count of a trace.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height), "#0a0a0a"))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// StepToSVG renders one playback step: bars for array algorithms, a
// circular node layout for graphs and a distance grid for matrix steps.
// The step message is written as the caption.
func StepToSVG(step *trace.Step, in input.Input, theme viz.Theme, width, height int) string {
	w, h := float64(width), float64(height)

	var sb strings.Builder
	sb.WriteString(header(w, h, string(theme.Background)))
	if step != nil {
		sb.WriteString(text(margin, margin, titleSize, string(theme.Text), "start", fmt.Sprintf("#%d %s", step.Index, step.Message)))
	}

	area := rect{x: margin, y: margin * 2, w: w - 2*margin, h: h - 3*margin}
	if values, ok := viz.Values(step, in); ok {
		bars(&sb, step, values, theme, area)
	} else {
		switch in := in.(type) {
		case input.Graph:
			graph(&sb, step, in, theme, area)
		case input.Weighted:
			if step != nil {
				if m, isMatrix := step.State.(trace.MatrixState); isMatrix {
					matrix(&sb, step, m, theme, area)
					break
				}
			}
			weighted(&sb, step, in, theme, area)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type rect struct{ x, y, w, h float64 }

func header(w, h float64, bg string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, bg)
}

func text(x, y float64, size int, fill, anchor, s string) string {
	return fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%d" fill="%s" text-anchor="%s">%s</text>
`, x, y, size, fill, anchor, html.EscapeString(s))
}

func bars(sb *strings.Builder, step *trace.Step, values []int, theme viz.Theme, area rect) {
	n := len(values)
	if n == 0 {
		return
	}
	lo, hi := 0, 0
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	slot := area.w / float64(n)
	barW := math.Max(slot*0.8, 1)
	plotH := area.h - fontSize*1.5
	for i, v := range values {
		tag := view.Project(step, i)
		bh := math.Max((float64(v)-float64(lo))/(float64(hi)-float64(lo))*plotH, 2)
		x := area.x + float64(i)*slot + (slot-barW)/2
		y := area.y + plotH - bh
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" data-tag="%s"/>
`, x, y, barW, bh, theme.TagColor(tag), tag))
		sb.WriteString(text(x+barW/2, area.y+area.h, fontSize, string(theme.Text), "middle", fmt.Sprint(v)))
	}
}

// circle places n points evenly on the largest circle that fits area.
func circle(n int, area rect) [][2]float64 {
	cx, cy := area.x+area.w/2, area.y+area.h/2
	r := math.Max(math.Min(area.w, area.h)/2-nodeR, 0)
	pts := make([][2]float64, n)
	for i := range pts {
		a := 2*math.Pi*float64(i)/float64(max(n, 1)) - math.Pi/2
		pts[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

func node(sb *strings.Builder, p [2]float64, label int, tag view.Tag, theme viz.Theme) {
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" data-tag="%s"/>
`, p[0], p[1], nodeR, theme.TagColor(tag), theme.Muted, tag))
	sb.WriteString(text(p[0], p[1]+4, fontSize, string(theme.Background), "middle", fmt.Sprint(label)))
}

func line(sb *strings.Builder, a, b [2]float64, color string, width float64) {
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, a[0], a[1], b[0], b[1], color, width))
}

func graph(sb *strings.Builder, step *trace.Step, g input.Graph, theme viz.Theme, area rect) {
	pts := circle(len(g.Nodes), area)
	pos := make(map[int][2]float64, len(g.Nodes))
	for i, n := range g.Nodes {
		pos[n] = pts[i]
	}

	var visited []int
	if step != nil {
		if s, ok := step.State.(trace.GraphTraversalState); ok {
			visited = s.Visited
		}
	}
	for _, e := range g.Edges {
		color, width := string(theme.Muted), 1.0
		if trace.Contains(visited, e.From) && trace.Contains(visited, e.To) {
			color, width = string(theme.TagColor(view.Visited)), 2.0
		}
		line(sb, pos[e.From], pos[e.To], color, width)
	}
	for i, n := range g.Nodes {
		node(sb, pts[i], n, view.Project(step, n), theme)
	}
}

func weighted(sb *strings.Builder, step *trace.Step, w input.Weighted, theme viz.Theme, area rect) {
	pts := circle(w.Vertices, area)

	var path []int
	mst := false
	if step != nil {
		switch s := step.State.(type) {
		case trace.ShortestPathState:
			path = s.Path
		case trace.MstState:
			mst = true
		}
	}

	for i, e := range w.Edges {
		if e.From >= len(pts) || e.To >= len(pts) {
			continue
		}
		tag := view.Default
		switch {
		case mst:
			tag = view.Project(step, i)
		case onPath(path, e.From, e.To):
			tag = view.OnPath
		}
		color, width := string(theme.Muted), 1.0
		if tag != view.Default {
			color, width = string(theme.TagColor(tag)), 2.5
		}
		line(sb, pts[e.From], pts[e.To], color, width)
		mid := [2]float64{(pts[e.From][0] + pts[e.To][0]) / 2, (pts[e.From][1] + pts[e.To][1]) / 2}
		sb.WriteString(text(mid[0], mid[1]-4, fontSize, color, "middle", fmt.Sprint(e.Weight)))
	}

	for v := range w.Vertices {
		tag := view.Default
		if !mst {
			tag = view.Project(step, v)
		}
		node(sb, pts[v], v, tag, theme)
	}
}

func onPath(path []int, a, b int) bool {
	for i := 0; i+1 < len(path); i++ {
		if (path[i] == a && path[i+1] == b) || (path[i] == b && path[i+1] == a) {
			return true
		}
	}
	return false
}

func matrix(sb *strings.Builder, step *trace.Step, m trace.MatrixState, theme viz.Theme, area rect) {
	n := len(m.Dist)
	if n == 0 {
		return
	}
	cell := math.Min(area.w, area.h) / float64(n)
	for i := range n {
		for j := range n {
			tag := view.Project(step, i*n+j)
			x, y := area.x+float64(j)*cell, area.y+float64(i)*cell
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" data-tag="%s"/>
`, x, y, cell, cell, theme.TagColor(tag), tag))
			label := "∞"
			if d := m.Dist[i][j]; !math.IsInf(d, 1) {
				label = fmt.Sprint(d)
			}
			sb.WriteString(text(x+cell/2, y+cell/2+4, fontSize, string(theme.TagColor(tag)), "middle", label))
		}
	}
}
