package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError)).
		Bold(true)
}

// newHelp returns a help bar in the tock color scheme
func newHelp() help.Model {
	h := help.New()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = descStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = descStyle
	return h
}

// newTextInput returns a text input in the tock color scheme
func newTextInput() textinput.Model {
	input := textinput.New()
	input.Width = 40
	input.CharLimit = 100
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return input
}

// runAction performs a store write off the event loop and reports the outcome
func runAction(ctx context.Context, deps Deps, fn func(ctx context.Context, now time.Time) (string, error)) tea.Cmd {
	return func() tea.Msg {
		now := deps.Clock.Now()
		status, err := fn(ctx, now)
		if err != nil {
			deps.Log.Warn("action failed", zap.Error(err))
			return errMsg{err: err}
		}
		return actionDoneMsg{now: now, status: status}
	}
}
