package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs are 5x5 block digits for the big clock
var glyphs = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
	'-': {"     ", "     ", "█████", "     ", "     "},
}

// renderBigClock draws text (as produced by parser.FormatClock) in block digits
func renderBigClock(text string, color string) string {
	var lines [5]strings.Builder

	for _, char := range text {
		glyph, ok := glyphs[char]
		if !ok {
			continue
		}
		for i := range glyph {
			lines[i].WriteString(glyph[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = style.Render(strings.TrimRight(lines[i].String(), " "))
	}
	return strings.Join(rendered, "\n")
}
