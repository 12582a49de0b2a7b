package curator

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrEmptyPoem    = errors.New("poem is empty")
)

// Lines shown to the reader when a call fails.
const (
	ChatApology         = "I apologize, but I seem to have lost my train of thought. Perhaps we can try again?"
	ChatFallback        = "I'm having trouble finding the right words..."
	AnalysisRetryNotice = "Failed to analyze. Please try again."
)

// UpstreamError means the completion call itself failed: transport, auth,
// non-2xx, timeout or an empty reply.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: completion failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError means the call succeeded but the reply did not
// hold the requested JSON shape.
type MalformedResponseError struct {
	Op      string
	Reason  string
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (%q)", e.Snippet)
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsUpstream reports whether err is or wraps an *UpstreamError.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}

// IsMalformed reports whether err is or wraps a *MalformedResponseError.
func IsMalformed(err error) bool {
	var m *MalformedResponseError
	return errors.As(err, &m)
}

func snippet(text string) string {
	const max = 120
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}
