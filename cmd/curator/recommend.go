package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/llm"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <mood...>",
	Short: "Recommend poetry books for a mood",
	Long:  `Ask for three books that fit a mood and print them as JSON. Prints [] when nothing usable comes back.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bridge, err := newBridge(ctx)
	if err != nil {
		return err
	}

	books := bridge.Recommend(ctx, strings.Join(args, " "))
	return printJSON(cmd, books)
}

// newBridge builds a bridge from config, env and flags.
func newBridge(ctx context.Context) (*curator.Bridge, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	provider, err := llm.Build(ctx, cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return curator.FromConfig(provider, cfg, slog.Default()), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
