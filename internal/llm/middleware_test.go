package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider replays errs in order, then succeeds.
type stubProvider struct {
	errs  []error
	calls int
}

func (s *stubProvider) Name() string               { return "stub" }
func (s *stubProvider) Ping(context.Context) error { return nil }

func (s *stubProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return &CompletionResponse{Content: "ok"}, nil
}

func TestWithRetry(t *testing.T) {
	transient := errors.New("503 service unavailable")

	t.Run("recovers from transient errors", func(t *testing.T) {
		stub := &stubProvider{errs: []error{transient, transient}}
		p := Chain(stub, WithRetry(3, time.Millisecond))

		resp, err := p.Complete(context.Background(), &CompletionRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Content)
		assert.Equal(t, 3, stub.calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		stub := &stubProvider{errs: []error{transient, transient, transient}}
		p := Chain(stub, WithRetry(2, time.Millisecond))

		_, err := p.Complete(context.Background(), &CompletionRequest{})
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 2, stub.calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		stub := &stubProvider{errs: []error{NewPermanentError(errors.New("401"))}}
		p := Chain(stub, WithRetry(5, time.Millisecond))

		_, err := p.Complete(context.Background(), &CompletionRequest{})
		assert.True(t, IsPermanent(err))
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("honors cancellation between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stub := &stubProvider{errs: []error{transient, transient}}
		p := Chain(stub, WithRetry(3, time.Hour))

		_, err := p.Complete(ctx, &CompletionRequest{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, stub.calls)
	})
}

func TestWithRateLimit(t *testing.T) {
	assert.Nil(t, WithRateLimit(0, 1))

	stub := &stubProvider{}
	p := Chain(stub, WithRateLimit(1000, 1))
	_, err := p.Complete(context.Background(), &CompletionRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Chain(&stubProvider{}, WithRateLimit(0.001, 1)).Complete(ctx, &CompletionRequest{})
	assert.Error(t, err)
}

func TestChainOrderAndNil(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Provider) Provider {
			return &tracing{wrapped: wrapped{next}, name: name, order: &order}
		}
	}

	stub := &stubProvider{}
	p := Chain(stub, mark("outer"), nil, mark("inner"), WithRateLimit(0, 1))
	_, err := p.Complete(context.Background(), &CompletionRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, "stub", p.Name())
}

type tracing struct {
	wrapped
	name  string
	order *[]string
}

func (tr *tracing) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	*tr.order = append(*tr.order, tr.name)
	return tr.next.Complete(ctx, req)
}
