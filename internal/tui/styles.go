package tui

import "github.com/charmbracelet/lipgloss"

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#B45309")
	colorSecondary = lipgloss.Color("#D6B370")
	colorSuccess   = lipgloss.Color("#65A30D")
	colorError     = lipgloss.Color("#DC2626")
	colorMuted     = lipgloss.Color("#78716C")
	colorWhite     = lipgloss.Color("#FAF7F0")

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Section label, e.g. "TONE"
	styleLabel = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	stylePrice = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Italic(true)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Italic(true)
)
