package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// Options wires the picker to the rest of the program. Logger, Collector
// and Scheduler may be nil.
type Options struct {
	Registry  *experiment.Registry
	Config    *config.Config
	Logger    *slog.Logger
	Collector *metrics.Collector
	Scheduler playback.Scheduler
}

type model struct {
	opts          Options
	state, cursor int
	algorithms    []string
	selected      experiment.Entry
	presets       []string
	presetCursor  int
	input         textinput.Model
	err           error
	theme         Theme
	width, height int
	liveModel     Model
}

func NewInteractiveApp(opts Options) *model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 48

	m := &model{
		opts:       opts,
		algorithms: opts.Registry.List(),
		input:      ti,
		theme:      GetTheme(opts.Config.Theme),
		width:      80,
		height:     24,
	}
	for i, name := range m.algorithms {
		if name == opts.Config.Algorithm {
			m.cursor = i
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		if m.state == stateConfig {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		if msg.Type == tea.KeyEsc && !m.liveModel.Editing() {
			m.liveModel.sim.Stop()
			m.theme = m.liveModel.Theme()
			m.state = stateConfig
			return m, m.input.Focus()
		}
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algorithms)-1 {
			m.cursor++
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "enter", " ":
		if len(m.algorithms) == 0 {
			return m, nil
		}
		entry, err := m.opts.Registry.Get(m.algorithms[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.selected, m.err = entry, nil
		m.presets = config.ListPresets(entry.Name)
		m.presetCursor = -1
		m.input.SetValue(m.initialInput())
		m.input.CursorEnd()
		m.state = stateConfig
		return m, m.input.Focus()
	}
	return m, nil
}

// initialInput prefers the configured input when the configured algorithm
// is the one selected.
func (m model) initialInput() string {
	cfg := m.opts.Config
	if cfg.Algorithm == m.selected.Name && cfg.Input != "" {
		return cfg.Input
	}
	return config.DefaultInput(m.selected.InputKind)
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.input.Blur()
		m.state, m.err = stateMenu, nil
		return m, nil
	case tea.KeyTab:
		if len(m.presets) > 0 {
			m.presetCursor = (m.presetCursor + 1) % len(m.presets)
			if p := config.GetPreset(m.selected.Name, m.presets[m.presetCursor]); p != nil {
				m.input.SetValue(p.Input)
				m.input.CursorEnd()
			}
		}
		return m, nil
	case tea.KeyEnter:
		return m.start()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start builds an experiment for the selected algorithm and switches to the
// playback screen. Rejected input keeps the user on the config screen.
func (m model) start() (model, tea.Cmd) {
	cfg := m.opts.Config
	ec := experiment.Config{
		Algorithm: m.selected.Name,
		Input:     m.input.Value(),
		Target:    cfg.Target,
		Start:     cfg.Start,
		Tick:      cfg.Tick(),
	}
	if m.presetCursor >= 0 && m.presetCursor < len(m.presets) {
		if p := config.GetPreset(m.selected.Name, m.presets[m.presetCursor]); p != nil && p.Input == ec.Input {
			ec.Target, ec.Start = p.Target, p.Start
		}
	}

	exp := experiment.New(ec)
	if err := exp.Setup(m.opts.Registry, m.opts.Logger, m.opts.Collector, m.opts.Scheduler); err != nil {
		m.err = err
		return m, nil
	}
	if _, err := exp.Run(context.Background()); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.input.Blur()
	m.liveModel = NewModel(exp.GetSimulator(), ec.Input, m.theme)
	m.state = stateSim
	return m, m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(m.theme.Muted)
	b.WriteString("\n\n    " + GradientText("ALGOVIZ", m.theme.Primary, m.theme.Secondary) + "\n    " + sub.Render("algorithm trace & playback") + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	var kind string
	for i, name := range m.algorithms {
		entry, _ := m.opts.Registry.Get(name)
		if k := string(entry.InputKind); k != kind {
			kind = k
			b.WriteString("    " + sub.Render(strings.ToUpper(k)) + "\n")
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(m.theme.Secondary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(m.theme.Text).Bold(true).Render(fmt.Sprintf("%-16s", name)),
				lipgloss.NewStyle().Foreground(m.theme.Accent).Render(entry.Description)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				sub.Render(fmt.Sprintf("  %-16s", name)),
				lipgloss.NewStyle().Foreground(m.theme.Muted).Faint(true).Render(entry.Description)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + ErrorText.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints(m.theme, "j/k", "navigate", "enter", "select", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(m.theme.Muted)
	b.WriteString("\n\n    " + GradientText(strings.ToUpper(m.selected.Name), m.theme.Primary, m.theme.Secondary) + "\n    " + sub.Render(m.selected.Description) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	b.WriteString("    " + MetricLabel.Render(string(m.selected.InputKind)) + m.input.View() + "\n")
	if m.selected.InputKind == input.KindArray {
		if values := input.ParseNumbers(m.input.Value()); len(values) > 0 {
			fs := make([]float64, len(values))
			for i, v := range values {
				fs[i] = float64(v)
			}
			b.WriteString("    " + MetricLabel.Render("preview") + Sparkline(m.theme, fs, len(fs)) + "\n")
		}
	}

	if len(m.presets) > 0 {
		names := make([]string, len(m.presets))
		for i, p := range m.presets {
			if i == m.presetCursor {
				names[i] = lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render(p)
			} else {
				names[i] = sub.Render(p)
			}
		}
		b.WriteString("    " + MetricLabel.Render("presets") + strings.Join(names, sub.Render(" · ")) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n    " + ErrorText.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints(m.theme, "tab", "preset", "enter", "start", "esc", "back") + "\n")
	return b.String()
}

// hints renders alternating key/description pairs.
func hints(theme Theme, pairs ...string) string {
	k := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	d := lipgloss.NewStyle().Foreground(theme.Muted)
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(k.Render(pairs[i]) + d.Render(" "+pairs[i+1]+"  "))
	}
	return strings.TrimRight(b.String(), " ")
}

// RunInteractive opens the algorithm picker.
func RunInteractive(opts Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(opts), tea.WithAltScreen()).Run()
	return err
}

// RunPlayback opens the playback screen directly for an already loaded
// experiment.
func RunPlayback(exp *experiment.Experiment, raw string, theme Theme) error {
	_, err := tea.NewProgram(NewModel(exp.GetSimulator(), raw, theme), tea.WithAltScreen()).Run()
	return err
}
