package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/curator/internal/config"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current config
	provider := config.GetProvider(a.state.config.Provider)
	providerName := a.state.config.Provider
	if provider != nil {
		providerName = provider.Name
	}

	// Mask API key
	maskedKey := "Not set"
	if a.state.config.APIKey != "" {
		if len(a.state.config.APIKey) > 8 {
			maskedKey = a.state.config.APIKey[:4] + "****" + a.state.config.APIKey[len(a.state.config.APIKey)-4:]
		} else {
			maskedKey = "****"
		}
	}

	status := styleError.Render("offline")
	if a.state.providerReady {
		status = stylePrice.Render("connected")
	}

	configLines := []string{
		fmt.Sprintf("  Provider:    %s (%s)", providerName, status),
		fmt.Sprintf("  Model:       %s", a.state.config.Model),
		fmt.Sprintf("  API Key:     %s", maskedKey),
		fmt.Sprintf("  Timeout:     %s", a.state.config.Timeout),
		fmt.Sprintf("  Temperature: %.1f", a.state.config.Temperature),
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [+/-] Adjust temperature",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Provider")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var lines []string
	for i, p := range config.Providers {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s", cursor, p.Name)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		desc := styleSubtitle.Render("No provider selected")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	providerDesc := styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerDesc))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range provider.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		// Mark current model
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, model, current)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.settingsMode {
	case "provider":
		switch msg.String() {
		case "up", "k":
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case "down", "j":
			a.state.settingsSelected = min(len(config.Providers)-1, a.state.settingsSelected+1)
		case "enter":
			p := config.Providers[a.state.settingsSelected]
			a.state.config.SetProvider(p.ID)
			a.state.settingsMode = ""
			if p.NeedsAPIKey && a.state.config.APIKey == "" {
				a.state.settingsMode = "apikey"
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.applySettings(), true
		}
		return nil, true

	case "model":
		provider := config.GetProvider(a.state.config.Provider)
		if provider == nil {
			return nil, true
		}
		switch msg.String() {
		case "up", "k":
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case "down", "j":
			a.state.settingsSelected = min(len(provider.Models)-1, a.state.settingsSelected+1)
		case "enter":
			if len(provider.Models) > 0 {
				a.state.config.Model = provider.Models[a.state.settingsSelected]
			}
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, true

	case "apikey":
		if msg.String() == "enter" {
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			a.state.apiKeyInput.Reset()
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "p":
		a.state.settingsMode = "provider"
		a.state.settingsSelected = 0
	case "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
	case "k":
		a.state.settingsMode = "apikey"
		a.state.apiKeyInput.Focus()
		return textinput.Blink, true
	case "+", "=":
		a.state.config.Temperature = min(1, a.state.config.Temperature+0.1)
		return a.applySettings(), true
	case "-":
		a.state.config.Temperature = max(0, a.state.config.Temperature-0.1)
		return a.applySettings(), true
	case "r":
		a.state.needsSetup = true
		a.state.setupStep = setupChooseProvider
		a.state.selectedProvider = 0
		a.view = viewSetup
	}
	return nil, true
}

// applySettings saves the config and reconnects with it.
func (a *App) applySettings() tea.Cmd {
	a.state.providerReady = false
	a.state.bridge = nil
	cfg := *a.state.config
	path := a.state.configPath
	save := func() tea.Msg {
		if err := saveConfig(&cfg, path); err != nil {
			return setupErrorMsg{err}
		}
		return nil
	}
	return tea.Batch(save, a.testProvider())
}
