package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/curator/internal/config"
	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/intent"
	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/llm"
	"github.com/sant0-9/curator/internal/session"
)

type view int

const (
	viewHome view = iota
	viewShop
	viewCurator
	viewStudio
	viewSetup
	viewSettings
	viewHelp
	viewError
)

// rooms cycle with tab
var rooms = []view{viewHome, viewShop, viewCurator, viewStudio}

// ProviderFactory builds the completion provider for a config.
type ProviderFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llm.Provider, error)

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	quitting bool

	logger      *slog.Logger
	newProvider ProviderFactory
}

type Option func(*App)

// WithProviderFactory replaces llm.Build, mainly for tests.
func WithProviderFactory(f ProviderFactory) Option {
	return func(a *App) { a.newProvider = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithConfigPath sets where setup and settings changes are saved.
func WithConfigPath(path string) Option {
	return func(a *App) { a.state.configPath = path }
}

// NewApp creates the storefront. A nil cfg starts the setup wizard.
func NewApp(cfg *config.Config, opts ...Option) *App {
	needsSetup := cfg == nil
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := newState(cfg)
	s.needsSetup = needsSetup

	a := &App{
		view:        viewHome,
		state:       s,
		logger:      slog.Default(),
		newProvider: llm.Build,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	a.state.input.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.testProvider(),
	)
}

// testProvider builds the provider and checks it is reachable.
func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	factory := a.newProvider
	logger := a.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		provider, err := factory(ctx, &cfg, logger)
		if err != nil {
			return providerErrorMsg{err}
		}
		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{provider: provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.navigate(viewHome)
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.notice = "Could not save config: " + msg.Error()
		return a, nil

	case providerReadyMsg:
		a.state.provider = msg.provider
		a.state.bridge = curator.FromConfig(msg.provider, a.state.config, a.logger)
		a.state.providerReady = true
		a.state.providerError = nil
		if a.view == viewError {
			a.navigate(viewHome)
		}
		if a.prevView == viewError {
			a.prevView = viewHome
		}
		a.logger.Info("provider ready", "provider", msg.provider.Name(), "model", a.state.config.Model)
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.view = viewError
		a.logger.Warn("provider unavailable", "provider", a.state.config.Provider, "error", msg.error)
		return a, nil

	case chatResultMsg:
		if a.state.session.FinishChat(msg.ticket, msg.reply, msg.err) {
			a.state.chatScroll = 0
		}
		if msg.err != nil {
			a.logger.Warn("chat failed", "error", msg.err)
		}
		return a, nil

	case recommendResultMsg:
		if !a.state.session.FinishRecommend(msg.ticket, msg.books) {
			a.logger.Debug("stale recommendations dropped", "gen", msg.ticket.Gen)
		}
		return a, nil

	case analysisResultMsg:
		if !a.state.session.FinishAnalysis(msg.ticket, msg.analysis, msg.err) {
			a.logger.Debug("stale analysis dropped", "gen", msg.ticket.Gen)
		}
		if msg.err != nil {
			a.logger.Warn("analysis failed", "error", msg.err)
		}
		return a, nil
	}

	// Update text inputs based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == setupEnterKey,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewStudio:
		var cmd tea.Cmd
		a.state.poem, cmd = a.state.poem.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewHome || a.view == viewShop || a.view == viewCurator:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize() {
	w := min(70, a.width-8)
	if w < 20 {
		w = 20
	}
	a.state.input.Width = w - 4
	a.state.poem.SetWidth(w)
	a.state.poem.SetHeight(max(5, min(14, a.height-16)))
}

// busy reports whether any call is in flight.
func (a *App) busy() bool {
	s := a.state.session
	return s.Pending(session.KindChat) || s.Pending(session.KindRecommend) || s.Pending(session.KindAnalysis)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Back):
		return a.back(), true
	}

	// View-specific handling
	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	case viewHelp:
		return nil, true
	case viewStudio:
		return a.handleStudioKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Enter):
		return a.handleInput(), true
	case key.Matches(msg, keys.Tab):
		a.nextRoom()
		return nil, true
	case a.view == viewCurator && key.Matches(msg, keys.Up):
		a.state.chatScroll += 3
		return nil, true
	case a.view == viewCurator && key.Matches(msg, keys.Down):
		a.state.chatScroll = max(0, a.state.chatScroll-3)
		return nil, true
	}
	return nil, false
}

func (a *App) back() tea.Cmd {
	switch a.view {
	case viewHelp:
		a.view = a.prevView
	case viewSettings:
		if a.state.settingsMode != "" {
			a.state.settingsMode = ""
			a.state.apiKeyInput.Reset()
			return nil
		}
		a.view = a.prevView
	case viewSetup:
		if a.state.setupStep == setupEnterKey {
			// Go back to provider selection
			a.state.setupStep = setupChooseProvider
			a.state.apiKeyInput.Reset()
			return nil
		}
		a.quitting = true
		return tea.Quit
	case viewHome, viewError:
		a.quitting = true
		return tea.Quit
	default:
		a.navigate(viewHome)
	}
	return nil
}

// navigate switches rooms. Leaving the shop or the studio abandons the
// search or analysis still in flight there.
func (a *App) navigate(to view) {
	if a.view == viewShop && to != viewShop {
		a.state.session.Cancel(session.KindRecommend)
	}
	if a.view == viewStudio && to != viewStudio {
		a.state.session.Cancel(session.KindAnalysis)
	}
	a.view = to
	a.state.notice = ""

	if to == viewStudio {
		a.state.input.Blur()
		a.state.poem.Focus()
	} else {
		a.state.poem.Blur()
		a.state.input.Focus()
	}
}

// overlay shows help or settings on top of the current room.
func (a *App) overlay(v view) {
	if a.view != viewHelp && a.view != viewSettings {
		a.prevView = a.view
	}
	a.view = v
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
}

func (a *App) nextRoom() {
	for i, r := range rooms {
		if r == a.view {
			a.navigate(rooms[(i+1)%len(rooms)])
			return
		}
	}
	a.navigate(viewHome)
}

func (a *App) handleInput() tea.Cmd {
	raw := a.state.input.Value()
	in := intent.Parse(raw)
	a.state.input.Reset()
	if in == nil {
		return nil
	}

	switch in.Kind {
	case intent.KindChat:
		if a.view == viewShop {
			return a.keepInputUnless(raw, a.startRecommend(in.Text))
		}
		return a.keepInputUnless(raw, a.startChat(in.Text))

	case intent.KindMood:
		if in.Text == "" {
			a.navigate(viewShop)
			return nil
		}
		return a.keepInputUnless(raw, a.startRecommend(in.Text))

	case intent.KindPoem:
		a.navigate(viewStudio)
		if in.Text == "" {
			return nil
		}
		a.state.poem.SetValue(in.Text)
		return a.startAnalysis(in.Text)

	case intent.KindNavigate:
		a.navigate(roomFor(in.View))
		return nil

	case intent.KindHelp:
		a.overlay(viewHelp)
		return nil

	case intent.KindSettings:
		a.overlay(viewSettings)
		return nil

	case intent.KindQuit:
		a.quitting = true
		return tea.Quit
	}

	a.state.notice = fmt.Sprintf("Unknown command /%s. Type /help for the list.", in.Command)
	return nil
}

// keepInputUnless puts raw back in the command bar when the request was
// refused, so nothing typed is lost.
func (a *App) keepInputUnless(raw string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		a.state.input.SetValue(raw)
		a.state.input.CursorEnd()
	}
	return cmd
}

func roomFor(name string) view {
	switch name {
	case intent.ViewShop:
		return viewShop
	case intent.ViewCurator:
		return viewCurator
	case intent.ViewStudio:
		return viewStudio
	}
	return viewHome
}

func (a *App) handleStudioKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Analyze):
		return a.startAnalysis(a.state.poem.Value()), true
	case key.Matches(msg, keys.Clear):
		a.state.poem.Reset()
		return nil, true
	case key.Matches(msg, keys.Tab):
		a.nextRoom()
		return nil, true
	}
	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "r":
		a.state.providerError = nil
		return a.testProvider(), true
	case "s":
		a.overlay(viewSettings)
		return nil, true
	}
	return nil, true
}

func (a *App) ready() bool {
	if a.state.bridge == nil {
		a.state.notice = "The Curator is still finding the lamp. Try again in a moment."
		return false
	}
	return true
}

func (a *App) startChat(text string) tea.Cmd {
	a.navigate(viewCurator)
	if !a.ready() {
		return nil
	}
	if a.state.session.Pending(session.KindChat) {
		a.state.notice = "The Curator is still composing a reply."
		return nil
	}

	ticket, history := a.state.session.BeginChat(text)
	a.state.chatScroll = 0
	bridge := a.state.bridge
	return tea.Batch(
		func() tea.Msg {
			reply, err := bridge.Chat(context.Background(), history, text)
			return chatResultMsg{ticket: ticket, reply: reply, err: err}
		},
		a.state.spinner.Tick,
	)
}

func (a *App) startRecommend(mood string) tea.Cmd {
	a.navigate(viewShop)
	if !a.ready() {
		return nil
	}

	ticket := a.state.session.BeginRecommend(mood)
	bridge := a.state.bridge
	return tea.Batch(
		func() tea.Msg {
			return recommendResultMsg{ticket: ticket, books: bridge.Recommend(context.Background(), mood)}
		},
		a.state.spinner.Tick,
	)
}

func (a *App) startAnalysis(poem string) tea.Cmd {
	if a.view != viewStudio {
		a.navigate(viewStudio)
	}
	if !a.ready() {
		return nil
	}
	if strings.TrimSpace(poem) == "" {
		a.state.notice = "Paste a poem first."
		return nil
	}
	if a.state.session.Pending(session.KindAnalysis) {
		return nil
	}

	ticket := a.state.session.BeginAnalysis(poem)
	bridge := a.state.bridge
	return tea.Batch(
		func() tea.Msg {
			analysis, err := bridge.Analyze(context.Background(), poem)
			return analysisResultMsg{ticket: ticket, analysis: analysis, err: err}
		},
		a.state.spinner.Tick,
	)
}

func saveConfig(cfg *config.Config, path string) error {
	if path != "" {
		return cfg.SaveTo(path)
	}
	return cfg.Save()
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }

type chatResultMsg struct {
	ticket session.Ticket
	reply  string
	err    error
}

type recommendResultMsg struct {
	ticket session.Ticket
	books  []library.Book
}

type analysisResultMsg struct {
	ticket   session.Ticket
	analysis *library.PoetryAnalysis
	err      error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewShop:
		return a.renderShop()
	case viewCurator:
		return a.renderCurator()
	case viewStudio:
		return a.renderStudio()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderHome()
	}
}
