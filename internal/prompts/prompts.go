package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sant0-9/curator/internal/llm"
)

//go:embed curator.md
var curatorBase string

//go:embed welcome.md
var welcome string

//go:embed mood.md
var moodTemplate string

//go:embed analysis.md
var analysisInstruction string

// RecommendationCount is how many books a mood prompt asks for.
const RecommendationCount = 3

// CuratorInstruction returns the Curator persona used as the chat system prompt.
func CuratorInstruction() string {
	return strings.TrimSpace(curatorBase)
}

// Welcome returns the greeting that opens every transcript.
func Welcome() string {
	return strings.TrimSpace(welcome)
}

// Structured is a JSON-mode prompt: ordered content parts plus the schema the
// reply must follow.
type Structured struct {
	Parts  []string
	Schema *llm.Schema
}

// Request converts the prompt into a JSON-mode completion request.
func (s *Structured) Request(model string) *llm.CompletionRequest {
	return &llm.CompletionRequest{
		Model:          model,
		Parts:          append([]string(nil), s.Parts...),
		ResponseSchema: s.Schema,
	}
}

// BuildChatRequest assembles a chat turn. History is passed through in
// order, unvalidated; the new message is always last.
func BuildChatRequest(history []llm.Turn, newMessage, systemInstruction string, temperature float64) *llm.CompletionRequest {
	return &llm.CompletionRequest{
		System:      systemInstruction,
		Messages:    append([]llm.Turn(nil), history...),
		Parts:       []string{newMessage},
		Temperature: clamp(temperature),
	}
}

// BuildMoodPrompt asks for RecommendationCount books fitting mood.
func BuildMoodPrompt(mood string) *Structured {
	return &Structured{
		Parts:  []string{fmt.Sprintf(strings.TrimSpace(moodTemplate), mood, RecommendationCount)},
		Schema: RecommendationSchema(),
	}
}

// BuildAnalysisPrompt keeps the poem as its own part so its text is never
// mixed into the instruction.
func BuildAnalysisPrompt(poemText string) *Structured {
	return &Structured{
		Parts:  []string{strings.TrimSpace(analysisInstruction), poemText},
		Schema: AnalysisSchema(),
	}
}

// RecommendationSchema is an array of {title, author, description, tags}, all required.
func RecommendationSchema() *llm.Schema {
	return llm.ArrayOf(llm.Object(
		llm.Field("title", llm.String()),
		llm.Field("author", llm.String()),
		llm.Field("description", llm.String()),
		llm.Field("tags", llm.ArrayOf(llm.String())),
	).Require("title", "author", "description", "tags"))
}

// AnalysisSchema is {tone, themes, structure, critique} with nothing required.
func AnalysisSchema() *llm.Schema {
	return llm.Object(
		llm.Field("tone", llm.String()),
		llm.Field("themes", llm.ArrayOf(llm.String())),
		llm.Field("structure", llm.String()),
		llm.Field("critique", llm.String()),
	)
}

func clamp(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
