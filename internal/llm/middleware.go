package llm

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Middleware wraps a Provider with a cross-cutting concern.
type Middleware func(Provider) Provider

// Chain applies middlewares so that the first one is the outermost.
func Chain(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// wrapped forwards everything but Complete to the next provider.
type wrapped struct {
	next Provider
}

func (w wrapped) Name() string                   { return w.next.Name() }
func (w wrapped) Ping(ctx context.Context) error { return w.next.Ping(ctx) }

// WithRetry retries Complete up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent errors and context cancellation stop
// immediately.
func WithRetry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Provider) Provider {
		return &retrying{wrapped: wrapped{next}, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	wrapped
	max  int
	base time.Duration
}

func (r *retrying) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	var last error
	for i := 0; i < r.max; i++ {
		resp, err := r.next.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		if IsPermanent(err) {
			return nil, err
		}
		last = err
		if i == r.max-1 {
			break
		}
		timer := time.NewTimer(r.base * time.Duration(1<<i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, last
}

// WithRateLimit throttles Complete calls to rps requests per second.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return func(next Provider) Provider {
		return &limited{wrapped: wrapped{next}, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type limited struct {
	wrapped
	limiter *rate.Limiter
}

func (l *limited) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Complete(ctx, req)
}

// WithLogging records each call's duration and outcome.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Provider) Provider {
		return &logging{wrapped: wrapped{next}, logger: logger}
	}
}

type logging struct {
	wrapped
	logger *slog.Logger
}

func (l *logging) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := l.next.Complete(ctx, req)
	attrs := []any{
		"provider", l.Name(),
		"json", req.WantsJSON(),
		"turns", len(req.Messages),
		"elapsed", time.Since(start).Round(time.Millisecond),
	}
	if err != nil {
		l.logger.Warn("completion failed", append(attrs, "error", err)...)
		return nil, err
	}
	l.logger.Debug("completion", append(attrs, "tokens", resp.Usage.TotalTokens)...)
	return resp, nil
}
