package tui

import (
	"strings"

	"github.com/sant0-9/curator/internal/library"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// transcriptTokens estimates what resending the history would cost.
// Error-flagged messages are never sent.
func transcriptTokens(msgs []library.ChatMessage) int {
	total := 0
	for _, m := range msgs {
		if !m.IsError {
			total += estimateTokens(m.Text)
		}
	}
	return total
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4-turbo"):
		return 128000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "mixtral"):
		return 32000
	case strings.Contains(model, "qwen"):
		return 32000
	}

	// Default fallback
	return 8000
}
