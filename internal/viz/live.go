package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	canvasWidth  = 60
	canvasHeight = 12
	statsWidth   = 40

	minInterval = 50 * time.Millisecond
	maxInterval = 5 * time.Second
)

var statsStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(lipgloss.Color("240")).
	MarginLeft(2).
	Padding(0, 2).
	Width(statsWidth)

// StatusMsg is delivered whenever the controller changes state, including
// autoplay ticks that arrive from the scheduler goroutine.
type StatusMsg playback.Status

// Model is the playback screen for one simulator.
type Model struct {
	sim      *sim.Simulator
	raw      string
	theme    Theme
	keys     keyMap
	help     help.Model
	progress progress.Model
	input    textinput.Model
	editing  bool
	notice   string
	err      error
	width    int
	updates  chan playback.Status
	series   *opSeries
}

// NewModel builds the playback screen for s. raw is the text currently
// loaded into s; it seeds the input editor.
func NewModel(s *sim.Simulator, raw string, theme Theme) Model {
	ti := textinput.New()
	ti.Prompt = "input › "
	ti.Placeholder = "values or edges"
	ti.CharLimit = 512
	ti.Width = canvasWidth

	m := Model{
		sim:      s,
		raw:      raw,
		theme:    theme,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill(string(theme.Primary)), progress.WithWidth(canvasWidth)),
		input:    ti,
		width:    canvasWidth + statsWidth,
		updates:  make(chan playback.Status, 1),
		series:   &opSeries{},
	}
	s.AddObserver(sim.ObserverFunc(m.publish))
	return m
}

// publish never blocks: a pending update already makes the view re-read the
// simulator, so later ones are dropped.
func (m Model) publish(st playback.Status) {
	select {
	case m.updates <- st:
	default:
	}
}

func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg { return StatusMsg(<-m.updates) }
}

func (m Model) Init() tea.Cmd {
	return m.waitForStatus()
}

// Editing reports whether the input editor has focus.
func (m Model) Editing() bool { return m.editing }

func (m Model) Theme() Theme { return m.theme }

// Update handles key presses and controller notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		return m, m.waitForStatus()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.playKey(msg)
	}
	return m, nil
}

func (m Model) playKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice, m.err = "", nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sim.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		if m.sim.Mode() == playback.Playing {
			m.sim.Pause()
		} else if !m.sim.Play() {
			m.notice = "nothing to play"
		}
	case key.Matches(msg, m.keys.Forward):
		if !m.sim.StepForward() {
			m.notice = m.rejected("at the last step")
		}
	case key.Matches(msg, m.keys.Back):
		if !m.sim.StepBackward() {
			m.notice = m.rejected("at the first step")
		}
	case key.Matches(msg, m.keys.First):
		m.sim.Seek(0)
	case key.Matches(msg, m.keys.Last):
		m.sim.Seek(m.sim.Len() - 1)
	case key.Matches(msg, m.keys.Stop):
		m.sim.Stop()
	case key.Matches(msg, m.keys.Faster):
		m.retime(m.sim.Controller().Interval() / 2)
	case key.Matches(msg, m.keys.Slower):
		m.retime(m.sim.Controller().Interval() * 2)
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.progress = progress.New(progress.WithSolidFill(string(m.theme.Primary)), progress.WithWidth(canvasWidth))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue(m.raw)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) rejected(edge string) string {
	if m.sim.Mode() == playback.Playing {
		return "pause before stepping"
	}
	return edge
}

// retime clamps d and, while playing, re-arms the timer so the new interval
// applies at once.
func (m *Model) retime(d time.Duration) {
	d = min(max(d, minInterval), maxInterval)
	m.sim.SetInterval(d)
	if m.sim.Mode() == playback.Playing {
		m.sim.Pause()
		m.sim.Play()
	}
	m.notice = "interval " + d.String()
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		raw := m.input.Value()
		m.editing = false
		m.input.Blur()
		changed, err := m.sim.Load(raw)
		m.err = err
		if err != nil {
			return m, nil
		}
		m.raw = raw
		if !changed {
			m.notice = "input unchanged"
		}
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.sim.Status()
	in := m.sim.Input()

	var left strings.Builder
	title := fmt.Sprintf("step %d/%d", st.Position+1, st.Len)
	left.WriteString(BoxWithTitle(m.theme, title, Frame(st.Step, in, m.theme, canvasWidth, canvasHeight), canvasWidth))
	left.WriteString("\n")
	left.WriteString(m.message(st) + "\n\n")
	left.WriteString(m.progress.ViewAs(float64(st.Percent)/100) + "\n")

	body := left.String()
	if m.width >= canvasWidth+statsWidth {
		body = joinColumns(body, m.stats(st))
	}

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.sim.Algorithm()), m.theme.Primary, m.theme.Secondary))
	s.WriteString("  " + ModeStyle(m.theme, st.Mode).Render(strings.ToUpper(st.Mode.String())) + "\n\n")
	s.WriteString(body + "\n")
	if m.editing {
		s.WriteString(m.input.View() + "\n")
	}
	if m.err != nil {
		s.WriteString(ErrorText.Render("rejected: "+m.err.Error()) + "\n")
	} else if m.notice != "" {
		s.WriteString(KeyHint.Render(m.notice) + "\n")
	}
	s.WriteString(Separator(canvasWidth) + "\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m Model) message(st playback.Status) string {
	if st.Step == nil {
		if st.Len == 0 {
			return Subtle.Render("no trace loaded")
		}
		return Subtle.Render("press space to play")
	}
	return MetricValue.Render(st.Step.Message)
}

func (m Model) stats(st playback.Status) string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Position", fmt.Sprintf("%d / %d", st.Position+1, st.Len))
	row("Progress", fmt.Sprintf("%d%%", st.Percent))
	row("Interval", m.sim.Controller().Interval().String())
	row("Input", truncate(m.raw, statsWidth-14))
	if st.Step != nil {
		row("Phase", string(st.Step.Phase))
	}

	if res := m.sim.Result(); res != nil {
		s.WriteString("\n")
		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(name, humanize.Comma(int64(res.Metrics[name])))
		}
	}

	if ops := m.series.upTo(m.sim.Trace(), st.Position); len(ops) > 1 {
		chart := asciigraph.Plot(ops,
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-10),
			asciigraph.Caption("operations"))
		s.WriteString("\n" + chart + "\n")
	}
	return s.String()
}

func joinColumns(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(right))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

// opSeries caches the running count of classified operations for one trace.
type opSeries struct {
	tr  *trace.Trace
	cum []float64
}

func (o *opSeries) upTo(tr *trace.Trace, pos int) []float64 {
	if tr != o.tr {
		o.tr = tr
		o.cum = metrics.CumulativeOps(tr)
	}
	if pos < 0 {
		return nil
	}
	return o.cum[:min(pos+1, len(o.cum))]
}
