package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the service answered without any text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Provider is the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable
	Ping(ctx context.Context) error
}

// Conversation roles. Providers that speak OpenAI-style roles map
// RoleModel to "assistant".
const (
	RoleSystem = "system"
	RoleUser   = "user"
	RoleModel  = "model"
)

// Turn is one prior message of a conversation
type Turn struct {
	Role string
	Text string
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model  string
	System string

	// Messages is the prior conversation, oldest first.
	Messages []Turn

	// Parts is the new user input. Multiple parts are sent as separate
	// segments where the provider supports it.
	Parts []string

	MaxTokens   int
	Temperature float64

	// ResponseSchema, when set, asks for a JSON response of this shape.
	ResponseSchema *Schema
}

// WantsJSON reports whether the request asks for structured output.
func (r *CompletionRequest) WantsJSON() bool {
	return r.ResponseSchema != nil
}

// Input joins the new input parts into a single user message.
func (r *CompletionRequest) Input() string {
	return strings.Join(r.Parts, "\n\n")
}

// Turns flattens the request into the order it is sent: the system
// instruction (if any), the prior turns, then the new user turn.
func (r *CompletionRequest) Turns() []Turn {
	turns := make([]Turn, 0, len(r.Messages)+2)
	if r.System != "" {
		turns = append(turns, Turn{Role: RoleSystem, Text: r.System})
	}
	turns = append(turns, r.Messages...)
	turns = append(turns, Turn{Role: RoleUser, Text: r.Input()})
	return turns
}

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or anything it wraps, is a PermanentError.
func IsPermanent(err error) bool {
	var pErr *PermanentError
	return errors.As(err, &pErr)
}
