// Package tui provides the BubbleTea playground that hosts a real banner
// presenter inside the terminal, with key presses standing in for touch
// gestures. It exercises entrance, auto-dismiss, drag, and exit behavior
// without a compositor.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notica/notica/internal/animation"
	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/config"
	"github.com/notica/notica/internal/model"
)

const (
	// pointsPerRow scales the presentation engine's point coordinates down
	// to terminal rows for rendering.
	pointsPerRow = 20.0

	bannerRows  = 5
	bannerWidth = 48
	dragStep    = 30.0
	flickSpeed  = 400.0
	framePeriod = time.Second / 60
	logLines    = 6
	chromeRows  = logLines + 3
)

// frameMsg drives the animation clock, one message per frame.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// stage is the single terminal surface a banner is presented into. It
// implements both the container and delegate sides of the presenter and
// records lifecycle events for the on-screen log.
type stage struct {
	height   float64
	attached bool
	offset   float64
	note     *model.Notification
	events   []string
}

func (s *stage) Attach(c banner.Content) {
	if n, ok := c.(*model.Notification); ok {
		s.note = n
	}
	s.attached = true
}

func (s *stage) Detach(banner.Content) {
	s.attached = false
	s.note = nil
	s.logf("detached")
}

func (s *stage) Height() float64 { return s.height }

func (s *stage) EndEditing() {}

func (s *stage) ChangedToActive(a banner.Attributes) {
	s.logf("active: style=%s duration=%s", a.Style, a.DisplayDuration)
}

func (s *stage) ChangedToInactive(banner.Attributes) {
	s.logf("inactive")
}

func (s *stage) ClosedByUser(banner.Content) {
	s.logf("closed by user")
}

// observe rebinds the stage to a presenter's constraint so every offset
// change moves the rendered banner.
func (s *stage) observe(c *banner.Constraint) {
	s.offset = c.Value()
	c.Observe(func(v float64) { s.offset = v })
}

func (s *stage) logf(format string, args ...any) {
	s.events = append(s.events, fmt.Sprintf(format, args...))
	if len(s.events) > logLines {
		s.events = s.events[len(s.events)-logLines:]
	}
}

// Model is the playground TUI model.
type Model struct {
	cfg    *config.Config
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	stage  *stage
	clock  *animation.ManualClock
	sched  banner.Scheduler
	posted chan func()

	presenter *banner.Presenter
	dragging  bool
	lastDelta float64
	urgency   int
	counter   int

	width  int
	height int
	ready  bool
}

// New creates a playground model. The presenter runs against a manual frame
// clock stepped from the BubbleTea update loop, so everything stays on the
// single program goroutine.
func New(cfg *config.Config) Model {
	posted := make(chan func(), 64)
	return Model{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stage:  &stage{},
		clock:  animation.NewManualClock(),
		sched:  banner.NewTimerScheduler(func(fn func()) { posted <- fn }),
		posted: posted,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.stage.height = float64(m.stageRows()) * pointsPerRow
		m.ready = true
		return m, nil

	case frameMsg:
		m.drainPosted()
		m.clock.Step(framePeriod)
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Urgency):
		m.urgency = (m.urgency + 1) % 3
	case key.Matches(msg, m.keys.Present):
		m.present()
	case key.Matches(msg, m.keys.Tap):
		if m.presenter != nil && m.presenter.WantsTap() {
			m.presenter.HandleTap()
		}
	case key.Matches(msg, m.keys.DragDown):
		m.drag(dragStep)
	case key.Matches(msg, m.keys.DragUp):
		m.drag(-dragStep)
	case key.Matches(msg, m.keys.Release):
		m.release(banner.PhaseEnded)
	case key.Matches(msg, m.keys.Cancel):
		m.release(banner.PhaseCancelled)
	case key.Matches(msg, m.keys.Flick):
		m.flick()
	case key.Matches(msg, m.keys.Close):
		if m.presenter != nil {
			m.presenter.Close(false, false)
		}
	case key.Matches(msg, m.keys.Extend):
		if m.presenter != nil {
			m.presenter.ExtendDisplay()
			m.stage.logf("display extended")
		}
	}
	return m, nil
}

// present replaces any visible banner with a fresh one at the currently
// selected urgency.
func (m *Model) present() {
	if m.presenter != nil {
		m.presenter.Close(true, false)
	}
	m.dragging = false
	m.lastDelta = 0
	m.counter++

	n, err := model.NewNotification()
	if err != nil {
		m.stage.logf("present failed: %v", err)
		return
	}
	n.AppName = "notica-demo"
	n.Summary = fmt.Sprintf("Demo banner #%d", m.counter)
	n.Body = "Drag along the exit direction or tap to dismiss."
	n.SetUrgency(m.urgency)

	st := m.stage
	m.presenter = banner.New(m.cfg.AttributesFor(m.urgency), n, st, st,
		animation.Factory(m.clock), m.sched, m.logger)
	st.observe(m.presenter.Constraint())
	m.presenter.Display()
}

func (m *Model) drag(delta float64) {
	if m.presenter == nil || !m.presenter.WantsPan() {
		return
	}
	if !m.dragging {
		m.dragging = true
		m.presenter.HandlePan(banner.PanEvent{Phase: banner.PhaseBegan})
	}
	m.lastDelta = delta
	m.presenter.HandlePan(banner.PanEvent{
		Translation: delta,
		Velocity:    delta / framePeriod.Seconds(),
		Phase:       banner.PhaseChanged,
	})
}

func (m *Model) release(phase banner.Phase) {
	if m.presenter == nil || !m.dragging {
		return
	}
	m.dragging = false
	m.lastDelta = 0
	m.presenter.HandlePan(banner.PanEvent{Phase: phase})
}

// flick releases with enough velocity to complete a swipe. Without a drag in
// progress it synthesizes one along the exit direction.
func (m *Model) flick() {
	if m.presenter == nil || !m.presenter.WantsPan() {
		return
	}
	dir := m.presenter.Attributes().Style.ExitSign()
	if m.lastDelta != 0 {
		dir = math.Copysign(1, m.lastDelta)
	}
	if !m.dragging {
		m.presenter.HandlePan(banner.PanEvent{Phase: banner.PhaseBegan})
	}
	m.dragging = false
	m.lastDelta = 0
	m.presenter.HandlePan(banner.PanEvent{
		Velocity: dir * flickSpeed,
		Phase:    banner.PhaseEnded,
	})
}

// drainPosted runs callbacks the scheduler marshalled over from its timer
// goroutines.
func (m *Model) drainPosted() {
	for {
		select {
		case fn := <-m.posted:
			fn()
		default:
			return
		}
	}
}

func (m Model) stageRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// bannerTopRow maps the constraint offset to the terminal row of the
// banner's top border, using the same resting-position math as the
// compositor surface.
func (m Model) bannerTopRow() int {
	a := m.presenter.Attributes()
	edge := a.Constraints.EdgeOffset
	h := m.stage.height
	bh := float64(bannerRows) * pointsPerRow

	var rest float64
	switch a.Style {
	case banner.StyleBottom:
		rest = h - bh - edge
	case banner.StyleCenter:
		rest = (h - bh) / 2
	default:
		rest = edge
	}
	top := rest + (m.stage.offset - edge)
	return int(math.Round(top / pointsPerRow))
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	urgencyColors = map[int]lipgloss.Color{
		model.UrgencyLow:      lipgloss.Color("8"),
		model.UrgencyNormal:   lipgloss.Color("4"),
		model.UrgencyCritical: lipgloss.Color("1"),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "initializing..."
	}

	rows := m.stageRows()
	lines := make([]string, rows)
	if m.stage.attached && m.stage.note != nil {
		box := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderBanner())
		top := m.bannerTopRow()
		for i, l := range strings.Split(box, "\n") {
			if r := top + i; r >= 0 && r < rows {
				lines[r] = l
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(lines, "\n"),
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderBanner() string {
	n := m.stage.note
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(urgencyColors[n.Urgency]).
		Width(bannerWidth).
		Padding(0, 1)

	summary := lipgloss.NewStyle().Bold(true).Render(n.Summary)
	footer := logStyle.Render(fmt.Sprintf("%s · %s · %s", n.AppName, n.UrgencyName, n.RelativeTime()))
	return style.Render(strings.Join([]string{summary, n.Body, footer}, "\n"))
}

func (m Model) renderStatus() string {
	state := "idle"
	if m.stage.attached {
		state = "visible"
	}
	if m.dragging {
		state = "dragging"
	}
	info := fmt.Sprintf("state: %-9s offset: %8.1f  animations: %d  next urgency: %s",
		state, m.stage.offset, m.clock.Running(), model.UrgencyNames[m.urgency])
	return lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(info),
		logStyle.Render(strings.Join(m.stage.events, "\n")),
	)
}

// Run starts the playground and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
