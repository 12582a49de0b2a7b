package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/curator/internal/catalog"
)

const logo = `
 ╔═╗┌─┐┌─┐┌┬┐┌─┐  ┬  ╔═╗┌─┐┌─┐┌─┐┌─┐
 ╠═╝│ │├┤  │ └─┐ ┌┼─ ╠═╝├─┤│ ┬├┤ └─┐
 ╩  └─┘└─┘ ┴ └─┘ └┘  ╩  ┴ ┴└─┘└─┘└─┘
`

func (a *App) renderHome() string {
	var b strings.Builder

	// Logo
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n")

	subtitle := styleSubtitle.Render("Verses for every feeling")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	// Featured shelf
	label := styleLabel.Render("FEATURED")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, label))
	b.WriteString("\n")

	var lines []string
	for _, book := range catalog.Featured() {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			styleTitle.Render(fmt.Sprintf("%-20s", truncate(book.Title, 20))),
			styleSubtitle.Render(fmt.Sprintf("%-18s", truncate(book.Author, 18))),
			stylePrice.Render(fmt.Sprintf("$%6.2f", book.Price)),
		))
	}
	shelf := styleBox.Copy().
		Width(a.contentWidth()).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shelf))
	b.WriteString("\n\n")

	b.WriteString(a.renderCommandBar())
	b.WriteString("\n")

	status := styleStatusBar.Render("[Tab] Shop  [/curator] Chat  [/studio] Analyze  [/help] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// renderCommandBar draws the shared input box plus any notice or
// connection state beneath it.
func (a *App) renderCommandBar() string {
	var b strings.Builder

	inputBox := styleBox.Copy().
		Width(a.contentWidth()).
		BorderForeground(colorMuted).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n")

	var line string
	switch {
	case a.state.notice != "":
		line = styleNotice.Render(a.state.notice)
	case !a.state.providerReady:
		line = styleSubtitle.Render(fmt.Sprintf("%s Connecting to %s...", a.state.spinner.View(), a.state.config.Provider))
	}
	if line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) contentWidth() int {
	return max(30, min(70, a.width-4))
}
