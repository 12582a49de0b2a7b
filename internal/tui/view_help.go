package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Commands
	commands := []string{
		"  /mood <feeling>   Find books for a mood",
		"  /poem <text>      Analyze a poem in the studio",
		"  /home /shop       Visit a room",
		"  /curator /studio  Visit a room",
		"  /settings         Open settings",
		"  /help             Show this help",
		"  /quit             Leave the store",
		"",
		"  Anything else is a question for the Curator",
	}

	commandsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(commands, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, commandsBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Tab             Next room",
		"  Enter           Submit input",
		"  Up/Down         Scroll the transcript",
		"  Ctrl+S          Analyze the poem (studio)",
		"  Ctrl+L          Clear the poem (studio)",
		"  Esc             Go back / Quit",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
