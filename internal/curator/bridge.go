// Package curator turns free-form completions into typed storefront values:
// chat replies, recommended books and poem analyses.
package curator

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sant0-9/curator/internal/config"
	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/llm"
	"github.com/sant0-9/curator/internal/prompts"
)

const (
	DefaultTimeout     = 60 * time.Second
	MaxTimeout         = 5 * time.Minute
	DefaultTemperature = 0.7
)

// Bridge issues completion requests and validates what comes back.
// It holds no conversation state; callers pass history in.
type Bridge struct {
	provider     llm.Provider
	model        string
	timeout      time.Duration
	temperature  float64
	system       string
	placeholders Placeholders
	logger       *slog.Logger

	recs     *memo[[]library.RawRecommendation]
	analyses *memo[library.PoetryAnalysis]
}

type Option func(*Bridge)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(b *Bridge) { b.model = model }
}

// WithTimeout bounds each call. Non-positive values keep the default and
// anything above MaxTimeout is capped.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d <= 0 {
			return
		}
		if d > MaxTimeout {
			d = MaxTimeout
		}
		b.timeout = d
	}
}

// WithTemperature sets sampling temperature, clamped to [0, 1].
func WithTemperature(t float64) Option {
	return func(b *Bridge) { b.temperature = math.Min(math.Max(t, 0), 1) }
}

func WithSystemInstruction(s string) Option {
	return func(b *Bridge) { b.system = s }
}

func WithPlaceholders(p Placeholders) Option {
	return func(b *Bridge) { b.placeholders = p.withDefaults() }
}

// WithCache remembers up to size parsed recommendation and analysis
// results per kind. Only replies that parsed cleanly are kept.
func WithCache(size int) Option {
	return func(b *Bridge) {
		b.recs = newMemo[[]library.RawRecommendation](size)
		b.analyses = newMemo[library.PoetryAnalysis](size)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

func New(provider llm.Provider, opts ...Option) *Bridge {
	b := &Bridge{
		provider:     provider,
		timeout:      DefaultTimeout,
		temperature:  DefaultTemperature,
		system:       prompts.CuratorInstruction(),
		placeholders: DefaultPlaceholders(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromConfig builds a bridge with the call settings from cfg.
func FromConfig(provider llm.Provider, cfg *config.Config, logger *slog.Logger) *Bridge {
	return New(provider,
		WithModel(cfg.Model),
		WithTimeout(cfg.Timeout),
		WithTemperature(cfg.Temperature),
		WithCache(cfg.CacheSize),
		WithLogger(logger),
	)
}

// Chat sends text after history and returns the Curator's raw reply.
// History is forwarded as given.
func (b *Bridge) Chat(ctx context.Context, history []library.ChatMessage, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	req := prompts.BuildChatRequest(toTurns(history), text, b.system, b.temperature)
	req.Model = b.model
	resp, err := b.complete(ctx, req)
	if err != nil {
		return "", &UpstreamError{Op: "chat", Err: err}
	}
	return resp.Content, nil
}

// Recommend never fails: upstream and parse problems are logged and yield
// an empty, non-nil shelf.
func (b *Bridge) Recommend(ctx context.Context, mood string) []library.Book {
	books := []library.Book{}
	if strings.TrimSpace(mood) == "" {
		return books
	}

	req := b.structured(prompts.BuildMoodPrompt(mood))
	key := requestKey(b.provider.Name(), req)
	recs, ok := b.recs.get(key)
	if !ok {
		resp, err := b.complete(ctx, req)
		if err != nil {
			b.logger.Warn("recommendation failed", "mood", mood, "error", &UpstreamError{Op: "recommend", Err: err})
			return books
		}

		recs, err = ParseRecommendations(resp.Content)
		if err != nil {
			b.logger.Warn("recommendation discarded", "mood", mood, "error", err)
			return books
		}
		b.recs.add(key, recs)
	}

	for _, rec := range recs {
		books = append(books, b.normalize(rec))
	}
	b.logger.Debug("recommendations", "mood", mood, "count", len(books))
	return books
}

// Analyze returns a structured reading of poemText. Unlike Recommend,
// every failure is returned to the caller.
func (b *Bridge) Analyze(ctx context.Context, poemText string) (*library.PoetryAnalysis, error) {
	if strings.TrimSpace(poemText) == "" {
		return nil, ErrEmptyPoem
	}

	req := b.structured(prompts.BuildAnalysisPrompt(poemText))
	key := requestKey(b.provider.Name(), req)
	if hit, ok := b.analyses.get(key); ok {
		hit.Themes = slices.Clone(hit.Themes)
		return &hit, nil
	}

	resp, err := b.complete(ctx, req)
	if err != nil {
		return nil, &UpstreamError{Op: "analyze", Err: err}
	}
	a, err := ParseAnalysis(resp.Content)
	if err != nil {
		return nil, err
	}
	cached := *a
	cached.Themes = slices.Clone(a.Themes)
	b.analyses.add(key, cached)
	return a, nil
}

func (b *Bridge) complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	resp, err := b.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, llm.ErrEmptyResponse
	}
	return resp, nil
}

func (b *Bridge) structured(p *prompts.Structured) *llm.CompletionRequest {
	req := p.Request(b.model)
	req.Temperature = b.temperature
	return req
}

func (b *Bridge) normalize(rec library.RawRecommendation) library.Book {
	return library.Book{
		ID:          b.placeholders.ID(),
		Title:       rec.Title,
		Author:      rec.Author,
		Price:       b.placeholders.Price(),
		CoverURL:    b.placeholders.Cover(rec.Title),
		Description: rec.Description,
		Tags:        slices.Clone(rec.Tags),
	}
}

func toTurns(history []library.ChatMessage) []llm.Turn {
	turns := make([]llm.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, llm.Turn{Role: string(m.Role), Text: m.Text})
	}
	return turns
}
