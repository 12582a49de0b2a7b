package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/session"
)

const consultingText = "Consulting the archives..."

func (a *App) renderCurator() string {
	boxWidth := a.contentWidth()
	leftPad := (a.width - boxWidth) / 2
	if leftPad < 2 {
		leftPad = 2
	}
	indent := strings.Repeat(" ", leftPad)

	// Calculate fixed heights
	headerHeight := 3 // Title + model + blank line
	inputHeight := 5  // Input box + notice + status bar

	// Available height for messages
	availableHeight := a.height - headerHeight - inputHeight
	if availableHeight < 5 {
		availableHeight = 5
	}

	// === BUILD HEADER ===
	var header strings.Builder
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("The Curator")
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	header.WriteString("\n")

	modelLine := lipgloss.NewStyle().
		Foreground(colorMuted).
		Render(a.getModelDisplayName())
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, modelLine))
	header.WriteString("\n\n")

	// === BUILD ALL MESSAGE LINES ===
	transcript := a.state.session.Transcript()
	var messageLines []string
	for _, msg := range transcript {
		messageLines = append(messageLines, renderMessage(msg, boxWidth-4, indent)...)
		messageLines = append(messageLines, "") // Blank line between messages
	}

	if a.state.session.Pending(session.KindChat) {
		loading := lipgloss.NewStyle().
			Foreground(colorPrimary).
			Render(fmt.Sprintf("%s %s", a.state.spinner.View(), consultingText))
		messageLines = append(messageLines, indent+loading)
	}

	// === APPLY SCROLL ===
	totalLines := len(messageLines)
	maxScroll := max(0, totalLines-availableHeight)
	a.state.chatScroll = min(max(a.state.chatScroll, 0), maxScroll)

	// Visible range, counted from the bottom so the newest stays in view
	endIdx := totalLines - a.state.chatScroll
	startIdx := max(0, endIdx-availableHeight)
	var visibleLines []string
	if startIdx < endIdx {
		visibleLines = messageLines[startIdx:endIdx]
	}

	// === BUILD INPUT/STATUS ===
	var footer strings.Builder
	a.state.input.Placeholder = "Ask for a poem, a poet, a feeling..."
	footer.WriteString(a.renderCommandBar())

	var statusParts []string
	if a.state.chatScroll > 0 {
		statusParts = append(statusParts, fmt.Sprintf("[scroll: %d]", a.state.chatScroll))
	}
	if stats := a.buildContextStats(transcript); stats != "" {
		statusParts = append(statusParts, stats)
	}
	statusParts = append(statusParts, "[Up/Down] Scroll  [Tab] Studio  [Esc] Home")
	status := styleStatusBar.Render(strings.Join(statusParts, "  "))
	footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	// === COMBINE WITH FIXED LAYOUT ===
	var messageArea strings.Builder
	messageArea.WriteString(strings.Join(visibleLines, "\n"))
	if pad := availableHeight - len(visibleLines); pad > 0 {
		messageArea.WriteString(strings.Repeat("\n", pad))
	}

	return header.String() + messageArea.String() + "\n" + footer.String()
}

func renderMessage(msg library.ChatMessage, width int, indent string) []string {
	lines := strings.Split(wrapText(msg.Text, width), "\n")
	out := make([]string, 0, len(lines))
	for j, line := range lines {
		var styled string
		switch {
		case msg.Role == library.RoleUser:
			prefix := "> "
			if j > 0 {
				prefix = "  "
			}
			styled = lipgloss.NewStyle().Foreground(colorSecondary).Render(prefix + line)
		case msg.IsError:
			styled = styleError.Render("  " + line)
		default:
			styled = lipgloss.NewStyle().Foreground(colorWhite).Render("  " + line)
		}
		out = append(out, indent+styled)
	}
	return out
}

// wrapText wraps each paragraph of text to maxWidth, preserving words
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapLine(p, maxWidth)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapLine(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		w := lipgloss.Width(word)
		if i > 0 {
			if lineLen+1+w > maxWidth {
				result.WriteString("\n")
				lineLen = 0
			} else {
				result.WriteString(" ")
				lineLen++
			}
		}
		result.WriteString(word)
		lineLen += w
	}
	return result.String()
}

// buildContextStats shows how much of the model's window the history uses
func (a *App) buildContextStats(transcript []library.ChatMessage) string {
	limit := getContextLimit(a.state.config.Model)
	used := transcriptTokens(transcript)
	if limit <= 0 || used == 0 {
		return ""
	}
	pct := float64(used) / float64(limit) * 100
	return fmt.Sprintf("%.1fk/%.0fk ctx (%.1f%%)", float64(used)/1000, float64(limit)/1000, pct)
}

// getModelDisplayName returns a friendly model name for display
func (a *App) getModelDisplayName() string {
	if a.state.config == nil {
		return ""
	}
	model := a.state.config.Model
	provider := a.state.config.Provider

	displayModel := model
	switch {
	case strings.Contains(model, "gemini-2.5-flash"):
		displayModel = "Gemini 2.5 Flash"
	case strings.Contains(model, "gemini-2.5-pro"):
		displayModel = "Gemini 2.5 Pro"
	case strings.Contains(model, "claude-3-5-sonnet"):
		displayModel = "Claude 3.5 Sonnet"
	case strings.Contains(model, "claude-3-5-haiku"):
		displayModel = "Claude 3.5 Haiku"
	case strings.Contains(model, "gpt-4o-mini"):
		displayModel = "GPT-4o mini"
	case strings.Contains(model, "gpt-4o"):
		displayModel = "GPT-4o"
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		displayModel = "Llama 3"
	case strings.Contains(model, "mixtral"):
		displayModel = "Mixtral"
	}

	if provider != "" && !strings.Contains(strings.ToLower(displayModel), strings.ToLower(provider)) {
		return fmt.Sprintf("%s via %s", displayModel, provider)
	}
	return displayModel
}
