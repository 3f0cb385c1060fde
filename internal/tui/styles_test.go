package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewHelpUsesThemeColors(t *testing.T) {
	h := newHelp()

	assert.Equal(t, lipgloss.Color(ColorHelpText), h.Styles.ShortDesc.GetForeground())
	assert.Equal(t, lipgloss.Color(ColorHelpText), h.Styles.FullDesc.GetForeground())
	assert.Equal(t, lipgloss.Color(ColorSecondaryText), h.Styles.ShortKey.GetForeground())
}
