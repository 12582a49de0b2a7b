package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIProvider speaks the OpenAI chat completions API. Groq, OpenRouter
// and custom endpoints share the same wire format and only differ in
// base URL and display name.
type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newOpenAICompatible(name, baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:    name,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newOpenAICompatible("openai", "https://api.openai.com/v1", apiKey, model)
}

func NewGroqProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	return newOpenAICompatible("groq", "https://api.groq.com/openai/v1", apiKey, model)
}

func NewOpenRouterProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "meta-llama/llama-3.1-70b-instruct"
	}
	return newOpenAICompatible("openrouter", "https://openrouter.ai/api/v1", apiKey, model)
}

func NewCustomProvider(baseURL, apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("custom", baseURL, apiKey, model)
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to %s API: %w", o.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 401 {
		return NewPermanentError(fmt.Errorf("invalid API key"))
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("%s API error: status %d", o.name, resp.StatusCode)
	}

	return nil
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Temperature    float64               `json:"temperature"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *openAIJSONSchema `json:"json_schema,omitempty"`
}

type openAIJSONSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	apiReq := openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	// Strict json_schema output only accepts an object at the top level;
	// other shapes rely on the schema instruction in the system prompt.
	if req.ResponseSchema != nil && req.ResponseSchema.Type == TypeObject {
		apiReq.ResponseFormat = &openAIResponseFormat{
			Type: "json_schema",
			JSONSchema: &openAIJSONSchema{
				Name:   "response",
				Schema: req.ResponseSchema.JSONSchema(),
			},
		}
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		o.baseURL+"/chat/completions",
		bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", o.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, statusError(o.name, resp.StatusCode, body)
	}

	var apiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", o.name, err)
	}

	if len(apiResp.Choices) == 0 || strings.TrimSpace(apiResp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	return &CompletionResponse{
		Content:      apiResp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: apiResp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(req *CompletionRequest) []openAIMessage {
	turns := withSchemaInstruction(req).Turns()
	result := make([]openAIMessage, len(turns))
	for i, t := range turns {
		result[i] = openAIMessage{Role: assistantRole(t.Role), Content: t.Text}
	}
	return result
}

// assistantRole maps the neutral model role onto OpenAI-style "assistant".
func assistantRole(role string) string {
	if role == RoleModel {
		return "assistant"
	}
	return role
}

// withSchemaInstruction returns a shallow copy of req whose system prompt
// also carries the response schema in plain text.
func withSchemaInstruction(req *CompletionRequest) *CompletionRequest {
	if req.ResponseSchema == nil {
		return req
	}
	cp := *req
	if cp.System == "" {
		cp.System = req.ResponseSchema.instruction()
	} else {
		cp.System = cp.System + "\n\n" + req.ResponseSchema.instruction()
	}
	return &cp
}

// statusError turns a non-200 response into an error. Client errors other
// than rate limiting will not succeed on retry.
func statusError(provider string, code int, body []byte) error {
	err := fmt.Errorf("%s error (status %d): %s", provider, code, strings.TrimSpace(string(body)))
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return NewPermanentError(err)
	}
	return err
}
