package viz

import (
	"strings"

	"github.com/san-kum/algoviz/internal/view"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid where every character cell also remembers
// the tag of the last entity drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tags          [][]view.Tag
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tags:   make([][]view.Tag, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tags[i] = make([]view.Tag, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels. A cell shared by two entities keeps a non-default tag over a
// default one.
func (c *Canvas) Set(x, y int, tag view.Tag) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if tag != view.Default || c.Tags[row][col] == view.Default {
		c.Tags[row][col] = tag
	}
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Tags[i][j] = view.Default
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, tag view.Tag) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, tag)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawBars clears the canvas and draws one vertical bar per value, scaled so
// the largest value fills the height. Bars start at the bottom edge; the
// smallest non-positive value maps to a one-pixel stub.
func (c *Canvas) DrawBars(values []int, tags []view.Tag) {
	c.Clear()
	n := len(values)
	if n == 0 {
		return
	}
	pw, ph := c.Width*2, c.Height*4

	lo, hi := 0, 0
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	slot := max(pw/n, 1)
	bar := slot
	if slot > 2 {
		bar = slot - 1
	}
	for i, v := range values {
		tag := view.Default
		if i < len(tags) {
			tag = tags[i]
		}
		h := max(int(barFraction(v, lo, hi)*float64(ph)), 1)
		x0 := i * slot
		for x := x0; x < x0+bar; x++ {
			c.DrawLine(x, ph-1, x, ph-h, tag)
		}
	}
}

// barFraction is v's height within [lo, hi] in [0, 1]. It works in float64
// so that the spread of extreme int values cannot overflow.
func barFraction(v, lo, hi int) float64 {
	return (float64(v) - float64(lo)) / (float64(hi) - float64(lo))
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors every lit cell with its tag's theme color. Runs of cells
// with the same tag share one styled segment.
func (c *Canvas) Render(theme Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Tags[row][col] == c.Tags[row][start] {
				continue
			}
			b.WriteString(theme.TagStyle(c.Tags[row][start]).Render(string(c.Grid[row][start:col])))
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
