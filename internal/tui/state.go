package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/curator/internal/config"
	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/llm"
	"github.com/sant0-9/curator/internal/prompts"
	"github.com/sant0-9/curator/internal/session"
)

type state struct {
	// Config
	config     *config.Config
	configPath string
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings state
	settingsMode     string
	settingsSelected int

	// Reader state: transcript, shelf, analysis
	session *session.Session

	// Widgets
	input   textinput.Model
	poem    textarea.Model
	spinner spinner.Model

	// Curator transcript scroll, in lines from the bottom
	chatScroll int

	// One-line feedback under the command bar
	notice string

	// Provider
	provider      llm.Provider
	bridge        *curator.Bridge
	providerReady bool
	providerError error
}

func newState(cfg *config.Config) *state {
	input := textinput.New()
	input.Placeholder = "Ask the Curator, or /mood, /poem, /help..."
	input.CharLimit = 500
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	poem := textarea.New()
	poem.Placeholder = "I wandered lonely as a cloud..."
	poem.ShowLineNumbers = false
	poem.CharLimit = 5000
	poem.SetWidth(60)
	poem.SetHeight(10)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleLogo

	return &state{
		config:      cfg,
		apiKeyInput: apiKey,
		input:       input,
		poem:        poem,
		spinner:     spin,
		session:     session.New(prompts.Welcome()),
	}
}
