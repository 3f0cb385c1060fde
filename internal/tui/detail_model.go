package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/parser"
	"github.com/balkashynov/tock/internal/tracking"
)

// Kind says whether a screen shows a stopwatch or a timer
type Kind int

const (
	KindStopwatch Kind = iota
	KindTimer
)

func (k Kind) String() string {
	if k == KindTimer {
		return "timer"
	}
	return "stopwatch"
}

func (k Kind) title() string {
	if k == KindTimer {
		return "Timer"
	}
	return "Stopwatch"
}

// detailStopwatchMsg / detailTimerMsg deliver WatchByID emissions; nil means gone
type detailStopwatchMsg struct{ sw *models.Stopwatch }
type detailTimerMsg struct{ timer *models.Timer }

// detailClosedMsg tells the list screen to drop the detail screen
type detailClosedMsg struct{}

// DetailModel is the full-screen view of a single stopwatch or timer
type DetailModel struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
	keys   keyMap
	help   help.Model
	input  textinput.Model
	bar    progress.Model

	width  int
	height int

	kind      Kind
	id        uint
	stopwatch *models.Stopwatch
	timer     *models.Timer
	loaded    bool
	deleted   bool

	now      time.Time
	live     *liveTicker
	swStream <-chan *models.Stopwatch
	tmStream <-chan *models.Timer

	renaming   bool
	standalone bool // run as its own program; esc quits instead of going back
	err        error
}

// NewDetailModel subscribes to the entity with id
func NewDetailModel(deps Deps, kind Kind, id uint, standalone bool) DetailModel {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	m := DetailModel{
		deps:       deps,
		ctx:        ctx,
		cancel:     cancel,
		keys:       defaultKeyMap(),
		help:       newHelp(),
		input:      newTextInput(),
		bar:        progress.New(progress.WithGradient(ColorAccentMain, ColorAccentBright), progress.WithoutPercentage()),
		kind:       kind,
		id:         id,
		now:        deps.Clock.Now(),
		live:       newLiveTicker(deps),
		standalone: standalone,
	}

	switch kind {
	case KindStopwatch:
		m.swStream = deps.Store.Stopwatches.WatchByID(ctx, id)
	case KindTimer:
		m.tmStream = deps.Store.Timers.WatchByID(ctx, id)
	}
	return m
}

// Init starts listening for entity updates and clock ticks
func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEntity(), m.live.wait())
}

func (m DetailModel) waitForEntity() tea.Cmd {
	if m.kind == KindTimer {
		stream := m.tmStream
		return func() tea.Msg {
			t, ok := <-stream
			if !ok {
				return nil
			}
			return detailTimerMsg{timer: t}
		}
	}
	stream := m.swStream
	return func() tea.Msg {
		sw, ok := <-stream
		if !ok {
			return nil
		}
		return detailStopwatchMsg{sw: sw}
	}
}

// Update implements tea.Model for standalone use
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m DetailModel) update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-10, 60))
		m.help.Width = m.width
		return m, nil

	case detailStopwatchMsg:
		m.loaded = true
		m.stopwatch = msg.sw
		m.now = m.deps.Clock.Now()
		m.live.sync(msg.sw != nil && msg.sw.IsRunning())
		return m, m.waitForEntity()

	case detailTimerMsg:
		m.loaded = true
		m.timer = msg.timer
		m.now = m.deps.Clock.Now()
		m.live.sync(msg.timer != nil && msg.timer.IsRunning)
		return m, m.waitForEntity()

	case clockTickMsg:
		if msg.src != m.live {
			return m, nil
		}
		m.now = msg.now
		return m, m.live.wait()

	case actionDoneMsg:
		m.now = msg.now
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.handleRenameKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m DetailModel) handleKeys(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.standalone {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return detailClosedMsg{} }
	}

	if !m.exists() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()

	case key.Matches(msg, m.keys.Reset):
		return m, m.reset()

	case key.Matches(msg, m.keys.Rename):
		m.renaming = true
		m.input.SetValue(m.name())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		m.deleted = true
		m.live.sync(false)
		cmd := m.delete()
		if m.standalone {
			return m, tea.Sequence(cmd, tea.Quit)
		}
		return m, tea.Sequence(cmd, func() tea.Msg { return detailClosedMsg{} })
	}

	return m, nil
}

func (m DetailModel) handleRenameKeys(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.renaming = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.renaming = false
		m.input.Blur()
		return m, m.rename(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m DetailModel) exists() bool {
	return m.stopwatch != nil || m.timer != nil
}

func (m DetailModel) name() string {
	if m.timer != nil {
		return m.timer.Name
	}
	if m.stopwatch != nil {
		return m.stopwatch.Name
	}
	return ""
}

func (m DetailModel) toggle() tea.Cmd {
	store, id := m.deps.Store, m.id
	if m.kind == KindTimer {
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			_, err := store.ToggleTimer(ctx, id, now)
			return "", err
		})
	}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		_, err := store.ToggleStopwatch(ctx, id, now)
		return "", err
	})
}

func (m DetailModel) reset() tea.Cmd {
	store, id := m.deps.Store, m.id
	if m.kind == KindTimer {
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			_, err := store.ResetTimer(ctx, id)
			return "", err
		})
	}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		_, err := store.ResetStopwatch(ctx, id, now)
		return "", err
	})
}

func (m DetailModel) rename(name string) tea.Cmd {
	store, req := m.deps.Store, db.RenameRequest{ID: m.id, Name: name}
	if m.kind == KindTimer {
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			_, err := store.RenameTimer(ctx, req)
			return "", err
		})
	}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		_, err := store.RenameStopwatch(ctx, req)
		return "", err
	})
}

// delete runs on a background context: the screen's own context is
// cancelled as soon as it closes
func (m DetailModel) delete() tea.Cmd {
	store, id := m.deps.Store, m.id
	if m.kind == KindTimer {
		return runAction(context.Background(), m.deps, func(ctx context.Context, now time.Time) (string, error) {
			return "", store.DeleteTimers(ctx, id)
		})
	}
	return runAction(context.Background(), m.deps, func(ctx context.Context, now time.Time) (string, error) {
		return "", store.DeleteStopwatches(ctx, id)
	})
}

func (m DetailModel) shutdown() {
	m.cancel()
	m.live.close()
}

// View renders the detail screen
func (m DetailModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(m.help.View(detailKeys{m.keys}))
	contentHeight := m.height - lipgloss.Height(helpBar) - 1

	var body string
	switch {
	case !m.loaded:
		body = mutedStyle().Render("Loading...")
	case !m.exists():
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			Render(fmt.Sprintf("%s #%d not found", m.kind.title(), m.id))
	case m.timer != nil:
		body = m.renderTimer(*m.timer)
	default:
		body = m.renderStopwatch(*m.stopwatch)
	}

	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m DetailModel) renderStopwatch(sw models.Stopwatch) string {
	state := "PAUSED"
	color := ColorPrimaryText
	if sw.IsRunning() {
		state = "RUNNING"
		color = ColorAccentBright
	}

	components := []string{
		headerStyle().Render(fmt.Sprintf("⏱  STOPWATCH #%d  ·  %s", sw.ID, state)),
		m.renderName(sw.Name),
		renderBigClock(parser.FormatClock(sw.Elapsed(m.now)), color),
		mutedStyle().Italic(true).Render("Started at " + sw.StartTime.Local().Format("15:04:05")),
	}
	components = append(components, m.renderFooter()...)
	return strings.Join(components, "\n\n")
}

func (m DetailModel) renderTimer(t models.Timer) string {
	state := "PAUSED"
	color := ColorPrimaryText
	if t.IsRunning {
		state = "RUNNING"
		color = ColorAccentBright
	}
	if t.Expired(m.now) {
		state = "EXPIRED"
		color = ColorError
	}

	components := []string{
		headerStyle().Render(fmt.Sprintf("⏲  TIMER #%d  ·  %s", t.ID, state)),
		m.renderName(t.Name),
		renderBigClock(parser.FormatClock(t.RemainingAt(m.now)), color),
		m.bar.ViewAs(t.Progress(m.now)),
		mutedStyle().Italic(true).Render("Set for " + parser.FormatClock(t.InitialDuration())),
	}
	if !tracking.Resettable(t) {
		components[len(components)-1] += mutedStyle().Render("  ·  nothing to reset")
	}
	components = append(components, m.renderFooter()...)
	return strings.Join(components, "\n\n")
}

func (m DetailModel) renderName(name string) string {
	if m.renaming {
		return m.input.View()
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Render(name)
}

func (m DetailModel) renderFooter() []string {
	if m.err != nil {
		return []string{errorStyle().Render("Error: " + m.err.Error())}
	}
	return nil
}
