package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicProviderComplete(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"content":[{"type":"text","text":"[{\"title\":\"Rain\"}]"}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":4}}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", "")
	p.apiURL = server.URL

	resp, err := p.Complete(context.Background(), &CompletionRequest{
		System:         "You recommend poetry.",
		Messages:       []Turn{{Role: RoleUser, Text: "hi"}, {Role: RoleModel, Text: "hello"}},
		Parts:          []string{"rainy"},
		ResponseSchema: ArrayOf(Object(Field("title", String()))),
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Rain"}]`, resp.Content)
	assert.Equal(t, 14, resp.Usage.TotalTokens)

	assert.Equal(t, "claude-3-5-sonnet-20241022", got.Model)
	assert.Equal(t, 2048, got.MaxTokens)
	assert.Contains(t, got.System, "You recommend poetry.")
	assert.Contains(t, got.System, "JSON Schema")
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, anthropicMessage{Role: "user", Content: "rainy"}, got.Messages[2])
}

func TestAnthropicProviderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("k", "m")
	p.apiURL = server.URL

	_, err := p.Complete(context.Background(), &CompletionRequest{Parts: []string{"hi"}})
	require.Error(t, err)
	assert.False(t, IsPermanent(err))
	assert.Contains(t, err.Error(), "429")
}
