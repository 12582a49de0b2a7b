package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/curator/internal/curator"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze a poem's tone, themes and structure",
	Long: `Analyze a poem and print the result as JSON. The poem comes from
--file, from the arguments, or from stdin when neither is given.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the poem from a file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	poem, err := readPoem(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	bridge, err := newBridge(ctx)
	if err != nil {
		return err
	}

	analysis, err := bridge.Analyze(ctx, poem)
	if err != nil {
		slog.Warn("analysis failed", "error", err)
		if errors.Is(err, curator.ErrEmptyPoem) {
			return err
		}
		return errors.New(curator.AnalysisRetryNotice)
	}
	return printJSON(cmd, analysis)
}

func readPoem(stdin io.Reader, args []string) (string, error) {
	switch {
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read poem: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
