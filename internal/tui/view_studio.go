package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/session"
)

func (a *App) renderStudio() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Poetry Studio")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	subtitle := styleSubtitle.Render("Paste a fragment of your own work or a classic verse")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	// Poem input
	inputBox := styleBox.Copy().
		Width(a.contentWidth()).
		BorderForeground(colorSecondary).
		Render(a.state.poem.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n")

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(a.state.notice)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Result panel
	s := a.state.session
	var body string
	border := colorMuted
	switch {
	case s.Pending(session.KindAnalysis):
		body = fmt.Sprintf("%s Deconstructing verses...", a.state.spinner.View())
		border = colorSecondary
	case s.AnalysisErr() != nil:
		body = styleError.Render(curator.AnalysisRetryNotice)
		border = colorError
	case s.Analysis() != nil:
		body = renderAnalysis(s.Analysis(), a.contentWidth()-4)
		border = colorPrimary
	default:
		body = styleSubtitle.Render("Analysis results will appear here.")
	}

	resultBox := styleBox.Copy().
		Width(a.contentWidth()).
		BorderForeground(border).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Ctrl+S] Analyze  [Ctrl+L] Clear  [Tab] Home  [Esc] Home")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func renderAnalysis(an *library.PoetryAnalysis, width int) string {
	var sections []string
	add := func(label, text string) {
		if text == "" {
			return
		}
		sections = append(sections, styleLabel.Render(label)+"\n"+wrapText(text, width))
	}

	add("TONE", an.Tone)
	add("STRUCTURE", an.Structure)
	if len(an.Themes) > 0 {
		add("THEMES", strings.Join(an.Themes, " · "))
	}
	add("CRITIQUE", an.Critique)

	return strings.Join(sections, "\n\n")
}
