package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/view"
)

// Theme is a named palette. Frames and SVG exports map view tags onto it
// through TagColor.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	// Highlight colors the on_path and matched tags.
	Highlight lipgloss.Color
}

// Themes lists the palettes in cycling order. The first is the default.
var Themes = []Theme{
	{Name: "default", Primary: "#00cccc", Secondary: "#5f87ff", Accent: "#ffd75f", Highlight: "#d787ff",
		Background: "#0a0a0a", Text: "#d0d0d0", Muted: "#6c6c6c",
		Success: "#5fd75f", Warning: "#ffaf00", Error: "#ff5f5f"},
	{Name: "cyberpunk", Primary: "#ff00ff", Secondary: "#00ffff", Accent: "#ffff00", Highlight: "#ff66cc",
		Background: "#0a0a0a", Text: "#ffffff", Muted: "#666666",
		Success: "#00ff00", Warning: "#ff8800", Error: "#ff0000"},
	{Name: "retro", Primary: "#00ff00", Secondary: "#00cc00", Accent: "#88ff88", Highlight: "#ccffcc",
		Background: "#001100", Text: "#00ff00", Muted: "#005500",
		Success: "#88ff88", Warning: "#ffff00", Error: "#ff0000"},
	{Name: "minimal", Primary: "#ffffff", Secondary: "#cccccc", Accent: "#0088ff", Highlight: "#aa66ff",
		Background: "#000000", Text: "#ffffff", Muted: "#888888",
		Success: "#00ff00", Warning: "#ffaa00", Error: "#ff0000"},
	{Name: "ocean", Primary: "#0077be", Secondary: "#00a8cc", Accent: "#ffd700", Highlight: "#b388ff",
		Background: "#001a33", Text: "#e0f0ff", Muted: "#4488aa",
		Success: "#00ff88", Warning: "#ffcc00", Error: "#ff4444"},
	{Name: "sunset", Primary: "#ff6b6b", Secondary: "#feca57", Accent: "#ff9ff3", Highlight: "#48dbfb",
		Background: "#2d1b2e", Text: "#fff5f5", Muted: "#8b6b8c",
		Success: "#5fd068", Warning: "#ffc048", Error: "#ff4757"},
}

// ThemeDefault is Themes[0].
var ThemeDefault = Themes[0]

// GetTheme returns a theme by name, falling back to the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// TagColor maps a visual tag to one of the theme's colors.
func (t Theme) TagColor(tag view.Tag) lipgloss.Color {
	switch tag {
	case view.Active:
		return t.Secondary
	case view.Comparing:
		return t.Accent
	case view.Swapped:
		return t.Error
	case view.Visited:
		return t.Muted
	case view.Frontier:
		return t.Warning
	case view.Finalized:
		return t.Success
	case view.Matched, view.OnPath:
		return t.Highlight
	}
	return t.Text
}

// TagStyle is a foreground style in the tag's color.
func (t Theme) TagStyle(tag view.Tag) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(t.TagColor(tag))
	if tag == view.Swapped || tag == view.Matched || tag == view.OnPath {
		s = s.Bold(true)
	}
	return s
}
