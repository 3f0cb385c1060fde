package tui

import (
	"context"
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
	"github.com/charmbracelet/x/ansi"

	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/parser"
	"github.com/balkashynov/tock/internal/tracking"
)

// Tab selects which list the main screen shows
type Tab int

const (
	TabStopwatches Tab = iota
	TabTimers
)

// inputMode is what the text input at the bottom of the list is collecting
type inputMode int

const (
	modeBrowse inputMode = iota
	modeRename
	modeNewDuration
	modeNewName
)

// stopwatchesMsg / timersMsg deliver Watch emissions
type stopwatchesMsg []models.Stopwatch
type timersMsg []models.Timer

// AppModel is the main screen: a stopwatch tab and a timer tab
type AppModel struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
	keys   keyMap
	help   help.Model
	input  textinput.Model
	bar    progress.Model

	width  int
	height int

	tab         Tab
	stopwatches []models.Stopwatch
	timers      []models.Timer
	selected    [2]int

	// Rows picked for deletion on the current tab; non-empty means delete mode
	marked map[uint]bool

	mode            inputMode
	renameID        uint
	pendingDuration time.Duration
	inputErr        string

	now      time.Time
	live     *liveTicker
	swStream <-chan []models.Stopwatch
	tmStream <-chan []models.Timer

	detail *DetailModel

	status string
	err    error
}

// NewAppModel subscribes to both tables
func NewAppModel(deps Deps) AppModel {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return AppModel{
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
		keys:     defaultKeyMap(),
		help:     newHelp(),
		input:    newTextInput(),
		bar:      progress.New(progress.WithGradient(ColorAccentMain, ColorAccentBright), progress.WithoutPercentage(), progress.WithWidth(16)),
		marked:   map[uint]bool{},
		now:      deps.Clock.Now(),
		live:     newLiveTicker(deps),
		swStream: deps.Store.Stopwatches.Watch(ctx),
		tmStream: deps.Store.Timers.Watch(ctx),
	}
}

// Init starts listening for list updates and clock ticks
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		waitForStopwatches(m.swStream),
		waitForTimers(m.tmStream),
		m.live.wait(),
	)
}

func waitForStopwatches(stream <-chan []models.Stopwatch) tea.Cmd {
	return func() tea.Msg {
		list, ok := <-stream
		if !ok {
			return nil
		}
		return stopwatchesMsg(list)
	}
}

func waitForTimers(stream <-chan []models.Timer) tea.Cmd {
	return func() tea.Msg {
		list, ok := <-stream
		if !ok {
			return nil
		}
		return timersMsg(list)
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(20, min(msg.Width-20, 60))
		if m.detail != nil {
			d, cmd := m.detail.update(msg)
			m.detail = &d
			return m, cmd
		}
		return m, nil

	case stopwatchesMsg:
		m.stopwatches = msg
		m.now = m.deps.Clock.Now()
		m.afterListChange()
		return m, waitForStopwatches(m.swStream)

	case timersMsg:
		m.timers = msg
		m.now = m.deps.Clock.Now()
		m.afterListChange()
		return m, waitForTimers(m.tmStream)

	case clockTickMsg:
		if msg.src == m.live {
			m.now = msg.now
			return m, m.live.wait()
		}

	case detailClosedMsg:
		if m.detail != nil {
			m.detail.shutdown()
			m.detail = nil
		}
		m.syncLive()
		return m, nil
	}

	if m.detail != nil {
		d, cmd := m.detail.update(msg)
		m.detail = &d
		return m, cmd
	}

	switch msg := msg.(type) {
	case actionDoneMsg:
		m.now = msg.now
		m.err = nil
		m.status = msg.status
		return m, nil

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

// afterListChange keeps selection and delete marks valid and decides whether
// the live clock should run
func (m *AppModel) afterListChange() {
	for i, n := range []int{len(m.stopwatches), len(m.timers)} {
		if m.selected[i] >= n {
			m.selected[i] = max(0, n-1)
		}
	}

	present := map[uint]bool{}
	for _, id := range m.currentIDs() {
		present[id] = true
	}
	for id := range m.marked {
		if !present[id] {
			delete(m.marked, id)
		}
	}

	m.syncLive()
}

// syncLive runs the list's clock only while the visible tab has something
// running and no detail screen covers it
func (m *AppModel) syncLive() {
	running := false
	if m.detail == nil {
		switch m.tab {
		case TabStopwatches:
			running = tracking.AnyStopwatchRunning(m.stopwatches)
		case TabTimers:
			running = tracking.AnyTimerRunning(m.timers)
		}
	}
	m.live.sync(running)
}

func (m AppModel) currentIDs() []uint {
	var ids []uint
	if m.tab == TabTimers {
		for _, t := range m.timers {
			ids = append(ids, t.ID)
		}
		return ids
	}
	for _, sw := range m.stopwatches {
		ids = append(ids, sw.ID)
	}
	return ids
}

// currentID returns the id of the selected row on the visible tab
func (m AppModel) currentID() (uint, bool) {
	ids := m.currentIDs()
	idx := m.selected[m.tab]
	if idx < 0 || idx >= len(ids) {
		return 0, false
	}
	return ids[idx], true
}

func (m AppModel) currentName() string {
	idx := m.selected[m.tab]
	if m.tab == TabTimers {
		if idx < len(m.timers) {
			return m.timers[idx].Name
		}
		return ""
	}
	if idx < len(m.stopwatches) {
		return m.stopwatches[idx].Name
	}
	return ""
}

func (m AppModel) deleteMode() bool {
	return len(m.marked) > 0
}

func (m AppModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.deleteMode() {
			m.marked = map[uint]bool{}
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchTab):
		m.tab = 1 - m.tab
		m.marked = map[uint]bool{}
		m.status = ""
		m.syncLive()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected[m.tab] > 0 {
			m.selected[m.tab]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected[m.tab] < len(m.currentIDs())-1 {
			m.selected[m.tab]++
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.marked = map[uint]bool{}
		if m.tab == TabTimers {
			return m.openInput(modeNewDuration, "", "Duration: 05:00, 90s, 25 min, 1:30:00")
		}
		return m.openInput(modeNewName, "", "Name (Enter for default)")
	}

	id, ok := m.currentID()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.deleteMode() {
			if m.marked[id] {
				delete(m.marked, id)
			} else {
				m.marked[id] = true
			}
			return m, nil
		}
		return m, m.toggle(id)

	case key.Matches(msg, m.keys.Reset):
		return m, m.reset(id)

	case key.Matches(msg, m.keys.Rename):
		m.renameID = id
		return m.openInput(modeRename, m.currentName(), "New name")

	case key.Matches(msg, m.keys.MarkDelete):
		if m.deleteMode() {
			m.marked = map[uint]bool{}
		} else {
			m.marked = map[uint]bool{id: true}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if !m.deleteMode() {
			m.status = "Press x to select rows to delete"
			return m, nil
		}
		ids := make([]uint, 0, len(m.marked))
		for markedID := range m.marked {
			ids = append(ids, markedID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		m.marked = map[uint]bool{}
		return m, m.deleteIDs(ids)

	case key.Matches(msg, m.keys.Open):
		kind := KindStopwatch
		if m.tab == TabTimers {
			kind = KindTimer
		}
		detail := NewDetailModel(m.deps, kind, id, false)
		detail, _ = detail.update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.detail = &detail
		m.syncLive()
		return m, detail.Init()
	}

	return m, nil
}

func (m AppModel) openInput(mode inputMode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.inputErr = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m AppModel) closeInput() AppModel {
	m.mode = modeBrowse
	m.inputErr = ""
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m AppModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		return m.closeInput(), nil

	case tea.KeyEnter:
		value := m.input.Value()
		switch m.mode {
		case modeRename:
			id := m.renameID
			return m.closeInput(), m.rename(id, value)

		case modeNewDuration:
			d, err := parser.ParseDuration(value)
			if err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.pendingDuration = d
			return m.openInput(modeNewName, "", "Name (Enter for default)")

		case modeNewName:
			return m.closeInput(), m.create(value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) toggle(id uint) tea.Cmd {
	store := m.deps.Store
	if m.tab == TabTimers {
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

func (m AppModel) reset(id uint) tea.Cmd {
	store := m.deps.Store
	if m.tab == TabTimers {
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

func (m AppModel) rename(id uint, name string) tea.Cmd {
	store, req := m.deps.Store, db.RenameRequest{ID: id, Name: name}
	if m.tab == TabTimers {
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			t, err := store.RenameTimer(ctx, req)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Renamed timer #%d to %q", t.ID, t.Name), nil
		})
	}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		sw, err := store.RenameStopwatch(ctx, req)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Renamed stopwatch #%d to %q", sw.ID, sw.Name), nil
	})
}

// create adds a new entity and starts it right away
func (m AppModel) create(name string) tea.Cmd {
	store := m.deps.Store
	if m.tab == TabTimers {
		req := db.CreateTimerRequest{Name: name, Duration: m.pendingDuration, Start: true}
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			t, err := store.CreateTimer(ctx, req, now)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Started timer #%d: %s", t.ID, t.Name), nil
		})
	}
	req := db.CreateStopwatchRequest{Name: name, Start: true}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		sw, err := store.CreateStopwatch(ctx, req, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Started stopwatch #%d: %s", sw.ID, sw.Name), nil
	})
}

func (m AppModel) deleteIDs(ids []uint) tea.Cmd {
	store := m.deps.Store
	if m.tab == TabTimers {
		return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
			return fmt.Sprintf("Deleted %d timer(s)", len(ids)), store.DeleteTimers(ctx, ids...)
		})
	}
	return runAction(m.ctx, m.deps, func(ctx context.Context, now time.Time) (string, error) {
		return fmt.Sprintf("Deleted %d stopwatch(es)", len(ids)), store.DeleteStopwatches(ctx, ids...)
	})
}

func (m AppModel) shutdown() {
	m.cancel()
	m.live.close()
	if m.detail != nil {
		m.detail.shutdown()
	}
}

// View renders the TUI
func (m AppModel) View() string {
	if m.detail != nil {
		return m.detail.View()
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")

	if m.mode != modeBrowse {
		b.WriteString(m.renderInput())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle().Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status))
	}
	b.WriteString("\n")

	var keys help.KeyMap = m.keys
	if m.deleteMode() {
		keys = deleteModeKeys{m.keys}
	}
	b.WriteString(lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(m.help.View(keys)))

	return b.String()
}

func (m AppModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 2)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDisabledText)).
		Padding(0, 2)

	swLabel := fmt.Sprintf("⏱ Stopwatches (%d)", len(m.stopwatches))
	tmLabel := fmt.Sprintf("⏲ Timers (%d)", len(m.timers))

	if m.tab == TabTimers {
		return lipgloss.JoinHorizontal(lipgloss.Top, inactive.Render(swLabel), " ", active.Render(tmLabel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, active.Render(swLabel), " ", inactive.Render(tmLabel))
}

func (m AppModel) renderList() string {
	var rows []string

	if m.tab == TabTimers {
		for i, t := range m.timers {
			rows = append(rows, m.renderTimerRow(i, t))
		}
	} else {
		for i, sw := range m.stopwatches {
			rows = append(rows, m.renderStopwatchRow(i, sw))
		}
	}

	if len(rows) == 0 {
		empty := "No stopwatches yet. Press n to add one."
		if m.tab == TabTimers {
			empty = "No timers yet. Press n to add one."
		}
		rows = append(rows, mutedStyle().Italic(true).Render(empty))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(max(40, m.width-2)).
		Render(strings.Join(rows, "\n"))
}

func (m AppModel) kindForTab() Kind {
	if m.tab == TabTimers {
		return KindTimer
	}
	return KindStopwatch
}

// rowPrefix renders the cursor and, in delete mode, the checkbox
func (m AppModel) rowPrefix(i int, id uint) string {
	cursor := "  "
	if i == m.selected[m.tab] {
		cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Render("› ")
	}
	if !m.deleteMode() {
		return cursor
	}
	if m.marked[id] {
		return cursor + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render("[x] ")
	}
	return cursor + mutedStyle().Render("[ ] ")
}

func (m AppModel) renderName(i int, name string) string {
	name = ansi.Truncate(name, 32, "...")
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Width(34)
	if i == m.selected[m.tab] {
		style = style.Bold(true)
	}
	return style.Render(name)
}

func (m AppModel) renderStopwatchRow(i int, sw models.Stopwatch) string {
	icon := "⏸"
	color := ColorSecondaryText
	if sw.IsRunning() {
		icon = "▶"
		color = ColorAccentBright
	}

	clockText := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(sw.IsRunning()).
		Render(parser.FormatClock(sw.Elapsed(m.now)))

	return fmt.Sprintf("%s%s %s %s", m.rowPrefix(i, sw.ID), icon, m.renderName(i, sw.Name), clockText)
}

func (m AppModel) renderTimerRow(i int, t models.Timer) string {
	icon := "⏸"
	color := ColorSecondaryText
	if t.IsRunning {
		icon = "▶"
		color = ColorAccentBright
	}
	if t.Expired(m.now) {
		color = ColorError
	}

	clockText := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(t.IsRunning).
		Width(10).
		Render(parser.FormatClock(t.RemainingAt(m.now)))

	return fmt.Sprintf("%s%s %s %s %s", m.rowPrefix(i, t.ID), icon, m.renderName(i, t.Name), clockText, m.bar.ViewAs(t.Progress(m.now)))
}

func (m AppModel) renderInput() string {
	label := map[inputMode]string{
		modeRename:      "Rename",
		modeNewDuration: fmt.Sprintf("New %s", m.kindForTab()),
		modeNewName:     fmt.Sprintf("New %s", m.kindForTab()),
	}[m.mode]

	line := headerStyle().Render(label+": ") + m.input.View()
	if m.inputErr != "" {
		line += "\n" + errorStyle().Render(m.inputErr)
	}
	return line
}
