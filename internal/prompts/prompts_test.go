package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/curator/internal/llm"
)

func TestBuildChatRequest(t *testing.T) {
	history := []llm.Turn{
		{Role: llm.RoleModel, Text: "Greetings."},
		{Role: llm.RoleUser, Text: "h1"},
		{Role: llm.RoleModel, Text: "m1"},
	}

	req := BuildChatRequest(history, "h2", "persona", 0.7)

	assert.Equal(t, "persona", req.System)
	assert.Equal(t, history, req.Messages)
	assert.Equal(t, []string{"h2"}, req.Parts)
	assert.Equal(t, 0.7, req.Temperature)
	assert.False(t, req.WantsJSON())

	turns := req.Turns()
	require.Len(t, turns, 5)
	assert.Equal(t, llm.Turn{Role: llm.RoleUser, Text: "h2"}, turns[4])
}

func TestBuildChatRequestPassesMalformedHistory(t *testing.T) {
	history := []llm.Turn{{Role: "narrator", Text: ""}}
	req := BuildChatRequest(history, "hello", "", 0.7)
	assert.Equal(t, history, req.Messages)

	history[0].Text = "mutated"
	assert.Empty(t, req.Messages[0].Text)
}

func TestBuildChatRequestClampsTemperature(t *testing.T) {
	assert.Equal(t, 1.0, BuildChatRequest(nil, "x", "", 1.8).Temperature)
	assert.Equal(t, 0.0, BuildChatRequest(nil, "x", "", -2).Temperature)
}

func TestBuildMoodPrompt(t *testing.T) {
	p := BuildMoodPrompt("rainy and introspective")

	require.Len(t, p.Parts, 1)
	assert.Contains(t, p.Parts[0], `The user is feeling: "rainy and introspective".`)
	assert.Contains(t, p.Parts[0], "Recommend 3 distinct poetry books")

	schema := p.Schema.JSONSchema()
	assert.Equal(t, "array", schema["type"])
	items := schema["items"].(map[string]any)
	assert.Equal(t, []string{"title", "author", "description", "tags"}, items["required"])
}

func TestBuildAnalysisPrompt(t *testing.T) {
	poem := "I wandered lonely as a cloud\nThat floats on high o'er vales and hills"
	p := BuildAnalysisPrompt(poem)

	require.Len(t, p.Parts, 2)
	assert.True(t, strings.HasPrefix(p.Parts[0], "Analyze the following poem"))
	assert.NotContains(t, p.Parts[0], "lonely")
	assert.Equal(t, poem, p.Parts[1])

	schema := p.Schema.JSONSchema()
	assert.Equal(t, "object", schema["type"])
	_, hasRequired := schema["required"]
	assert.False(t, hasRequired)
}

func TestBuildersAreDeterministic(t *testing.T) {
	assert.Equal(t, BuildMoodPrompt("joy"), BuildMoodPrompt("joy"))
	assert.Equal(t, BuildAnalysisPrompt("a rose"), BuildAnalysisPrompt("a rose"))
	assert.Equal(t, BuildChatRequest(nil, "hi", "p", 0.5), BuildChatRequest(nil, "hi", "p", 0.5))
}

func TestStructuredRequest(t *testing.T) {
	p := BuildAnalysisPrompt("poem")
	req := p.Request("gemini-2.5-flash")

	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.True(t, req.WantsJSON())
	assert.Equal(t, p.Parts, req.Parts)
	assert.Empty(t, req.System)
}

func TestEmbeddedText(t *testing.T) {
	assert.Contains(t, CuratorInstruction(), "Poets & Pages")
	assert.True(t, strings.HasPrefix(Welcome(), "Greetings. I am the Curator."))
}
