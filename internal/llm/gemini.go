package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiProvider is a thin wrapper around the official genai client.
// Cross-cutting concerns (retries, rate limiting, caching, logging) are
// applied via Middleware.
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

// NewGeminiProvider creates a Gemini API client. baseURL is optional and
// only needed for proxies and tests.
func NewGeminiProvider(ctx context.Context, apiKey, model, baseURL string) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{cli: cli, model: model}, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) Ping(ctx context.Context) error {
	if _, err := g.cli.Models.Get(ctx, g.model, nil); err != nil {
		return err
	}
	return nil
}

func (g *GeminiProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	resp, err := g.cli.Models.GenerateContent(ctx, model, toGeminiContents(req), toGeminiConfig(req))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil {
			continue
		}
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, ErrEmptyResponse
	}

	out := &CompletionResponse{
		Content:      text.String(),
		Model:        model,
		FinishReason: string(cand.FinishReason),
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

// classifyGeminiError marks client errors other than rate limiting as
// permanent, matching statusError for the HTTP providers.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	wrapped := fmt.Errorf("gemini error (status %d): %w", apiErr.Code, err)
	switch apiErr.Code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return NewPermanentError(wrapped)
	}
	return wrapped
}

func toGeminiContents(req *CompletionRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages)+1)
	for _, t := range req.Messages {
		role := RoleUser
		if t.Role == RoleModel {
			role = RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, &genai.Part{Text: p})
	}
	return append(contents, &genai.Content{Role: RoleUser, Parts: parts})
}

func toGeminiConfig(req *CompletionRequest) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGeminiSchema(req.ResponseSchema)
	}
	return cfg
}

func toGeminiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{}
	switch s.Type {
	case TypeString:
		out.Type = genai.TypeString
	case TypeArray:
		out.Type = genai.TypeArray
		out.Items = toGeminiSchema(s.Items)
	case TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = toGeminiSchema(p.Schema)
		}
		if len(s.Required) > 0 {
			out.Required = append([]string(nil), s.Required...)
		}
	}
	return out
}
