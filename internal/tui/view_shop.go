package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/session"
)

func (a *App) renderShop() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("The Shop")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	subtitle := styleSubtitle.Render("Tell us how you feel and we will find the verses")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	s := a.state.session
	var body string
	switch {
	case s.Pending(session.KindRecommend):
		body = fmt.Sprintf("%s Searching the shelves for %q...", a.state.spinner.View(), s.Mood())
	case s.Mood() == "":
		body = styleSubtitle.Render("Type a mood below, e.g. \"a quiet rainy afternoon\".")
	case len(s.Books()) == 0:
		body = styleSubtitle.Render(fmt.Sprintf("No matches for %q. Try describing it another way.", s.Mood()))
	default:
		body = a.renderBookCards(s.Books())
	}

	box := styleBox.Copy().
		Width(a.contentWidth()).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	a.state.input.Placeholder = "How are you feeling?"
	b.WriteString(a.renderCommandBar())
	b.WriteString("\n")

	status := styleStatusBar.Render("[Enter] Search  [Tab] Curator  [Esc] Home")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) renderBookCards(books []library.Book) string {
	width := a.contentWidth() - 4
	cards := make([]string, 0, len(books))
	for _, book := range books {
		var card strings.Builder
		card.WriteString(styleTitle.Render(book.Title))
		card.WriteString(styleSubtitle.Render(" by " + book.Author))
		card.WriteString("  ")
		card.WriteString(stylePrice.Render(fmt.Sprintf("$%.2f", book.Price)))
		card.WriteString("\n")
		card.WriteString(wrapText(book.Description, width))
		if len(book.Tags) > 0 {
			card.WriteString("\n")
			card.WriteString(styleLabel.Render("#" + strings.Join(book.Tags, " #")))
		}
		card.WriteString("\n")
		card.WriteString(styleSubtitle.Render(book.CoverURL))
		cards = append(cards, card.String())
	}
	return strings.Join(cards, "\n\n")
}
