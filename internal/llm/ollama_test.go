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

func TestOllamaProviderComplete(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"model":"llama3.1:8b","message":{"role":"assistant","content":"{\"tone\":\"wistful\"}"},"done":true,"done_reason":"stop","prompt_eval_count":20,"eval_count":5}`))
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llama3.1:8b")
	resp, err := p.Complete(context.Background(), &CompletionRequest{
		Messages:       []Turn{{Role: RoleModel, Text: "Greetings."}},
		Parts:          []string{"Analyze", "roses are red"},
		ResponseSchema: Object(Field("tone", String())),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"tone":"wistful"}`, resp.Content)
	assert.Equal(t, 25, resp.Usage.TotalTokens)

	assert.False(t, got.Stream)
	assert.Equal(t, "object", got.Format["type"])
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "assistant", got.Messages[0].Role)
	assert.Equal(t, "Analyze\n\nroses are red", got.Messages[1].Content)
}

func TestOllamaProviderNoSchemaOmitsFormat(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"model":"m","message":{"role":"assistant","content":"hello"},"done":true}`))
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "m")
	_, err := p.Complete(context.Background(), &CompletionRequest{Parts: []string{"hi"}})
	require.NoError(t, err)
	_, hasFormat := raw["format"]
	assert.False(t, hasFormat)
}

func TestOllamaProviderPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	assert.NoError(t, NewOllamaProvider(server.URL, "m").Ping(context.Background()))
}
