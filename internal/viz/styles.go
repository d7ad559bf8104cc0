package viz

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/algoviz/internal/playback"
)

var (
	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(12)

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f"))
)

// ModeStyle colors a playback mode badge.
func ModeStyle(theme Theme, mode playback.Mode) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch mode {
	case playback.Playing:
		return s.Foreground(theme.Success)
	case playback.Paused:
		return s.Foreground(theme.Warning)
	case playback.Finished:
		return s.Foreground(theme.Secondary)
	}
	return s.Foreground(theme.Muted)
}

// GradientText colors each rune of text along a blend from startColor to
// endColor.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(startColor, endColor, t)).Bold(true).Render(string(c)))
	}
	return b.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a row of block characters at most width wide,
// shaded from the theme's secondary color at the minimum to its primary
// color at the maximum.
func Sparkline(theme Theme, values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	lo, hi := slices.Min(values), slices.Max(values)
	stride := max(len(values)/width, 1)

	var b strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		norm := 0.0
		if hi > lo {
			norm = (values[i*stride] - lo) / (hi - lo)
		}
		block := sparkBlocks[int(norm*float64(len(sparkBlocks)-1))]
		b.WriteString(lipgloss.NewStyle().Foreground(blend(theme.Secondary, theme.Primary, norm)).Render(string(block)))
	}
	return b.String()
}

// BoxWithTitle renders a titled box
func BoxWithTitle(theme Theme, title, content string, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderForeground(theme.Muted).
		Width(width).
		Padding(0, 1)

	rule := lipgloss.NewStyle().Foreground(theme.Muted)
	fill := max(width-lipgloss.Width(title)-3, 0)
	header := rule.Render("╭─ ") + titleStyle.Render(title) + rule.Render(" "+strings.Repeat("─", fill)+"╮")
	return header + "\n" + box.Render(content)
}

// Decorative separator
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}

// blend mixes two theme colors in RGB. A color that is not #rrggbb or #rgb
// yields the other one unchanged.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return to
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex())
}
