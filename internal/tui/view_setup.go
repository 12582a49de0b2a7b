package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/curator/internal/config"
)

const (
	setupChooseProvider = iota
	setupEnterKey
)

func (a *App) renderSetup() string {
	var body string
	switch a.state.setupStep {
	case setupChooseProvider:
		body = a.renderProviderChoice()
	case setupEnterKey:
		body = a.renderKeyEntry()
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n\n")
	b.WriteString(body)
	if a.state.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(a.state.notice)))
	}
	return a.centerVertically(b.String())
}

func (a *App) renderProviderChoice() string {
	var b strings.Builder

	title := styleTitle.Render("Before the shop opens, choose who powers the Curator")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(config.Providers))
	for i, p := range config.Providers {
		row := fmt.Sprintf("%-12s %s", p.Name, p.Description)
		if i == a.state.selectedProvider {
			rows = append(rows, styleLabel.Render("> "+row))
			continue
		}
		rows = append(rows, styleSubtitle.Render("  "+row))
	}
	list := styleBox.Copy().Width(60).Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, list))
	b.WriteString("\n\n")

	selected := config.Providers[a.state.selectedProvider]
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(credentialHint(selected))))
	b.WriteString("\n\n")

	help := styleStatusBar.Render("[j/k] Move  [Enter] Choose  [Esc] Leave")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, help))
	return b.String()
}

// credentialHint tells the user where the key for p comes from.
func credentialHint(p config.ProviderInfo) string {
	if !p.NeedsAPIKey {
		return "Runs on this machine. No key needed."
	}
	if env := config.EnvKeySource(p.ID); env != "" {
		return fmt.Sprintf("Key found in %s. It will not be written to disk.", env)
	}
	return "Reads " + strings.Join(p.EnvKeys, " or ") + ", or asks for a key next."
}

func (a *App) renderKeyEntry() string {
	var b strings.Builder
	p := config.GetProvider(a.state.config.Provider)

	title := styleTitle.Render(fmt.Sprintf("The Curator needs a %s key", p.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if p.SignupURL != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Get one at "+p.SignupURL)))
		b.WriteString("\n")
	}
	if len(p.EnvKeys) > 0 {
		env := styleSubtitle.Render(fmt.Sprintf("Or export %s and start again.", p.EnvKeys[0]))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, env))
	}
	b.WriteString("\n\n")

	field := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, field))
	b.WriteString("\n\n")

	help := styleStatusBar.Render("[Enter] Open the shop  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, help))
	return b.String()
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case setupChooseProvider:
		switch msg.String() {
		case "up", "k":
			a.state.selectedProvider = max(0, a.state.selectedProvider-1)
		case "down", "j":
			a.state.selectedProvider = min(len(config.Providers)-1, a.state.selectedProvider+1)
		case "enter":
			return a.chooseProvider(config.Providers[a.state.selectedProvider]), true
		}
		return nil, true

	case setupEnterKey:
		if msg.String() != "enter" {
			return nil, false
		}
		k := strings.TrimSpace(a.state.apiKeyInput.Value())
		if k == "" {
			a.state.notice = "Paste a key to continue."
			return nil, true
		}
		a.state.config.APIKey = k
		a.state.apiKeyInput.Reset()
		a.state.notice = ""
		return a.finishSetup(), true
	}
	return nil, false
}

// chooseProvider skips the key step when the environment already holds
// a credential for p.
func (a *App) chooseProvider(p config.ProviderInfo) tea.Cmd {
	cfg := a.state.config
	cfg.SetProvider(p.ID)
	if cfg.APIKey == "" {
		cfg.APIKey = config.EnvAPIKey(p.ID)
	}
	a.state.notice = ""

	if p.NeedsAPIKey && cfg.APIKey == "" {
		a.state.setupStep = setupEnterKey
		a.state.apiKeyInput.Focus()
		return textinput.Blink
	}
	return a.finishSetup()
}

// finishSetup saves the choice. A key that came from the environment
// stays there.
func (a *App) finishSetup() tea.Cmd {
	cfg := *a.state.config
	if cfg.APIKey != "" && cfg.APIKey == config.EnvAPIKey(cfg.Provider) {
		cfg.APIKey = ""
	}
	path := a.state.configPath
	return func() tea.Msg {
		if err := saveConfig(&cfg, path); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := max(0, (a.height-lines)/2)
	return strings.Repeat("\n", padding) + content
}
