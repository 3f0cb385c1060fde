package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/balkashynov/tock/internal/clock"
	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/parser"
)

// Deps are the collaborators every screen needs
type Deps struct {
	Store        *db.Store
	Clock        clock.Clock
	TickInterval time.Duration
	Log          *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.System
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.TickInterval <= 0 {
		d.TickInterval = clock.DefaultInterval
	}
	return d
}

// clockTickMsg carries a live clock reading to the screen that owns src
type clockTickMsg struct {
	src *liveTicker
	now time.Time
}

// actionDoneMsg is sent after a toggle/reset/rename/create/delete was saved
type actionDoneMsg struct {
	now    time.Time
	status string
}

// errMsg reports a failed store operation
type errMsg struct{ err error }

// liveTicker feeds a screen's LiveClock into the bubbletea event loop. Ticks
// the screen has not consumed yet are dropped rather than queued.
type liveTicker struct {
	clock  *clock.LiveClock
	ch     chan time.Time
	mu     sync.Mutex
	closed bool
}

func newLiveTicker(deps Deps) *liveTicker {
	return &liveTicker{
		clock: clock.New(deps.TickInterval, deps.Clock, deps.Log),
		ch:    make(chan time.Time, 1),
	}
}

func (lt *liveTicker) deliver(now time.Time) {
	select {
	case lt.ch <- now:
	default:
	}
}

// sync runs the clock only while something on screen is running
func (lt *liveTicker) sync(shouldRun bool) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.closed {
		return
	}
	lt.clock.Sync(shouldRun, lt.deliver)
}

// wait blocks until the next tick
func (lt *liveTicker) wait() tea.Cmd {
	return func() tea.Msg {
		now, ok := <-lt.ch
		if !ok {
			return nil
		}
		return clockTickMsg{src: lt, now: now}
	}
}

func (lt *liveTicker) close() {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.closed {
		return
	}
	lt.closed = true
	lt.clock.Stop()
	close(lt.ch)
}

// RunApp starts the interactive stopwatch/timer list
func RunApp(deps Deps) error {
	model := NewAppModel(deps)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	if m, ok := finalModel.(AppModel); ok {
		m.shutdown()
	} else {
		model.shutdown()
	}
	return err
}

// RunDetail opens the full-screen view of one stopwatch or timer
func RunDetail(deps Deps, kind Kind, id uint) error {
	model := NewDetailModel(deps, kind, id, true)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		model.shutdown()
		return err
	}

	m, ok := finalModel.(DetailModel)
	if !ok {
		model.shutdown()
		return nil
	}
	defer m.shutdown()

	now := m.deps.Clock.Now()
	switch {
	case m.deleted:
		fmt.Printf("🗑️  Deleted %s #%d\n", kind, id)
	case m.loaded && m.stopwatch != nil && m.stopwatch.IsRunning():
		fmt.Printf("\n💡 Stopwatch #%d is still running: %s\n", id, parser.FormatClock(m.stopwatch.Elapsed(now)))
		fmt.Printf("   Use 'tock sw toggle %d' to pause it.\n", id)
	case m.loaded && m.timer != nil && m.timer.IsRunning:
		fmt.Printf("\n💡 Timer #%d is still running: %s left\n", id, parser.FormatClock(m.timer.RemainingAt(now)))
		fmt.Printf("   Use 'tock timer toggle %d' to pause it.\n", id)
	}
	return nil
}
