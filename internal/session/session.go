// Package session holds the per-reader state of one storefront visit: the
// chat transcript, the current recommendation shelf and the latest poem
// analysis. It is single-writer; the TUI update loop owns it.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/library"
)

// Kind names an interaction point that can have a request in flight.
type Kind int

const (
	KindChat Kind = iota
	KindRecommend
	KindAnalysis
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindRecommend:
		return "recommend"
	case KindAnalysis:
		return "analysis"
	}
	return "unknown"
}

// Ticket identifies one request. Only the newest ticket of each kind may
// apply its result.
type Ticket struct {
	Kind Kind
	Gen  uint64
}

type Session struct {
	now   func() time.Time
	newID func() string

	transcript []library.ChatMessage

	mood  string
	books []library.Book

	poem        string
	analysis    *library.PoetryAnalysis
	analysisErr error

	gen     [kindCount]uint64
	pending [kindCount]bool
}

type Option func(*Session)

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDs replaces the message id generator.
func WithIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// New starts a session whose transcript opens with the welcome line.
func New(welcome string, opts ...Option) *Session {
	s := &Session{
		now:   time.Now,
		newID: uuid.NewString,
		books: []library.Book{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if welcome != "" {
		s.transcript = append(s.transcript, s.message(library.RoleModel, welcome, false))
	}
	return s
}

func (s *Session) message(role library.Role, text string, isError bool) library.ChatMessage {
	return library.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
		IsError:   isError,
	}
}

func (s *Session) begin(k Kind) Ticket {
	s.gen[k]++
	s.pending[k] = true
	return Ticket{Kind: k, Gen: s.gen[k]}
}

// finish reports whether t is still current and, if so, clears pending.
func (s *Session) finish(t Ticket) bool {
	if t.Kind < 0 || t.Kind >= kindCount || t.Gen != s.gen[t.Kind] || !s.pending[t.Kind] {
		return false
	}
	s.pending[t.Kind] = false
	return true
}

// Cancel abandons any in-flight request of kind k; its result will be dropped.
func (s *Session) Cancel(k Kind) {
	if k < 0 || k >= kindCount || !s.pending[k] {
		return
	}
	s.gen[k]++
	s.pending[k] = false
}

// Pending reports whether a request of kind k is in flight.
func (s *Session) Pending(k Kind) bool {
	if k < 0 || k >= kindCount {
		return false
	}
	return s.pending[k]
}

// Transcript returns a copy of every message, oldest first.
func (s *Session) Transcript() []library.ChatMessage {
	return append([]library.ChatMessage(nil), s.transcript...)
}

// History returns the messages worth sending upstream: the transcript
// without error-flagged apologies.
func (s *Session) History() []library.ChatMessage {
	out := make([]library.ChatMessage, 0, len(s.transcript))
	for _, m := range s.transcript {
		if !m.IsError {
			out = append(out, m)
		}
	}
	return out
}

// BeginChat records the reader's message and returns the history that
// preceded it.
func (s *Session) BeginChat(text string) (Ticket, []library.ChatMessage) {
	history := s.History()
	s.transcript = append(s.transcript, s.message(library.RoleUser, text, false))
	return s.begin(KindChat), history
}

// FinishChat appends the Curator's reply, or a flagged apology when err is
// set. Stale tickets are ignored.
func (s *Session) FinishChat(t Ticket, reply string, err error) bool {
	if t.Kind != KindChat || !s.finish(t) {
		return false
	}
	switch {
	case err != nil:
		s.transcript = append(s.transcript, s.message(library.RoleModel, curator.ChatApology, true))
	case strings.TrimSpace(reply) == "":
		s.transcript = append(s.transcript, s.message(library.RoleModel, curator.ChatFallback, false))
	default:
		s.transcript = append(s.transcript, s.message(library.RoleModel, reply, false))
	}
	return true
}

// BeginRecommend starts a mood search.
func (s *Session) BeginRecommend(mood string) Ticket {
	s.mood = mood
	return s.begin(KindRecommend)
}

// FinishRecommend replaces the shelf if t is current.
func (s *Session) FinishRecommend(t Ticket, books []library.Book) bool {
	if t.Kind != KindRecommend || !s.finish(t) {
		return false
	}
	if books == nil {
		books = []library.Book{}
	}
	s.books = library.DedupeBooks(books)
	return true
}

// Mood is the phrase of the latest mood search.
func (s *Session) Mood() string { return s.mood }

// Books returns a copy of the current recommendation shelf.
func (s *Session) Books() []library.Book {
	return append([]library.Book{}, s.books...)
}

// BeginAnalysis starts a poem analysis and clears the previous result.
func (s *Session) BeginAnalysis(poem string) Ticket {
	s.poem = poem
	s.analysis = nil
	s.analysisErr = nil
	return s.begin(KindAnalysis)
}

// FinishAnalysis stores a, or records err and leaves no analysis.
func (s *Session) FinishAnalysis(t Ticket, a *library.PoetryAnalysis, err error) bool {
	if t.Kind != KindAnalysis || !s.finish(t) {
		return false
	}
	if err != nil {
		s.analysis = nil
		s.analysisErr = err
		return true
	}
	s.analysis = a
	s.analysisErr = nil
	return true
}

// Poem is the text of the latest analysis request.
func (s *Session) Poem() string { return s.poem }

// Analysis returns the latest analysis, or nil.
func (s *Session) Analysis() *library.PoetryAnalysis { return s.analysis }

// AnalysisErr returns why the latest analysis failed, or nil.
func (s *Session) AnalysisErr() error { return s.analysisErr }
