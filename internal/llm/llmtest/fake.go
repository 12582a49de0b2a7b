// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/curator/internal/llm"
)

// Fake answers every Complete call through Handler and records the requests
// it saw. When Hang is set, calls block until the context ends.
type Fake struct {
	Handler func(req *llm.CompletionRequest) (string, error)
	Hang    bool

	mu       sync.Mutex
	requests []llm.CompletionRequest
}

// Reply returns a Fake that always answers with text.
func Reply(text string) *Fake {
	return &Fake{Handler: func(*llm.CompletionRequest) (string, error) { return text, nil }}
}

// Fail returns a Fake whose calls all fail with err.
func Fail(err error) *Fake {
	return &Fake{Handler: func(*llm.CompletionRequest) (string, error) { return "", err }}
}

func (f *Fake) Name() string               { return "fake" }
func (f *Fake) Ping(context.Context) error { return nil }

func (f *Fake) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *req)
	f.mu.Unlock()

	if f.Hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := f.Handler(req)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: text, Model: req.Model, FinishReason: "stop"}, nil
}

// Hanging returns a Fake that never answers.
func Hanging() *Fake {
	return &Fake{Hang: true}
}

// Calls reports how many requests were made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Last returns the most recent request, or nil.
func (f *Fake) Last() *llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	req := f.requests[len(f.requests)-1]
	return &req
}
