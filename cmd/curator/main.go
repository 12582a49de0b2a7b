package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sant0-9/curator/internal/config"
	"github.com/sant0-9/curator/internal/tui"
)

var version = "dev"

var flags struct {
	configPath string
	provider   string
	model      string
	timeout    time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Poets & Pages, a poetry bookstore in your terminal",
	Long: `Curator opens the Poets & Pages storefront: chat with the Curator,
find books for a mood, and have a poem read closely in the studio.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/curator/config.yaml)")
	pf.StringVar(&flags.provider, "provider", "", "completion provider (gemini, ollama, groq, openai, anthropic, openrouter, custom)")
	pf.StringVar(&flags.model, "model", "", "model name")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-call timeout, e.g. 30s")
}

func logLevel() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and overlays env and flags. The bool is
// false when no file exists yet.
func loadConfig() (*config.Config, bool, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, false, fmt.Errorf("load config: %w", err)
	}

	found := cfg != nil
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	applyFlags(cfg)
	return cfg, found, nil
}

func applyFlags(cfg *config.Config) {
	if flags.provider != "" {
		cfg.SetProvider(flags.provider)
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, found, err := loadConfig()
	if err != nil {
		return err
	}
	// First run with nothing usable in the environment goes through setup
	if !found && cfg.Validate() != nil {
		cfg = nil
	}

	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	app := tui.NewApp(cfg, tui.WithLogger(logger), tui.WithConfigPath(flags.configPath))
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run storefront: %w", err)
	}
	return nil
}

// openLog keeps log output off the alt-screen.
func openLog() (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "curator.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
