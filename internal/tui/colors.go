package tui

// Color constants for the tock TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Names, clocks of paused entries
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Active tab, selection border
	ColorAccentBright = "#A78BFA" // Running clocks

	// State Colors
	ColorError   = "#EF4444" // Expired timers, errors
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B" // Rows marked for deletion
)
