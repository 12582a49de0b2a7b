package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/curator/internal/curator"
	"github.com/sant0-9/curator/internal/library"
)

func newTestSession() *Session {
	clock := time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)
	n := 0
	return New("Greetings.",
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("msg-%d", n)
		}),
	)
}

func TestNewSeedsWelcome(t *testing.T) {
	s := newTestSession()
	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, library.RoleModel, transcript[0].Role)
	assert.Equal(t, "Greetings.", transcript[0].Text)
	assert.Equal(t, "msg-1", transcript[0].ID)

	assert.Empty(t, New("").Transcript())
}

func TestChatRoundTrip(t *testing.T) {
	s := newTestSession()

	ticket, history := s.BeginChat("I feel low.")
	require.Len(t, history, 1)
	assert.Equal(t, "Greetings.", history[0].Text)
	assert.True(t, s.Pending(KindChat))

	require.True(t, s.FinishChat(ticket, "Try Wild Geese.", nil))
	assert.False(t, s.Pending(KindChat))

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, library.RoleUser, transcript[1].Role)
	assert.Equal(t, "Try Wild Geese.", transcript[2].Text)
	assert.True(t, transcript[1].Timestamp.Before(transcript[2].Timestamp))

	ids := map[string]bool{}
	for _, m := range transcript {
		ids[m.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestChatFailureAppendsFlaggedApology(t *testing.T) {
	s := newTestSession()
	ticket, _ := s.BeginChat("hello")
	require.True(t, s.FinishChat(ticket, "", errors.New("boom")))

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	last := transcript[2]
	assert.True(t, last.IsError)
	assert.Equal(t, curator.ChatApology, last.Text)
	assert.Equal(t, "hello", transcript[1].Text)

	_, history := s.BeginChat("again")
	assert.Len(t, history, 2)
	for _, m := range history {
		assert.False(t, m.IsError)
	}
}

func TestChatBlankReplyUsesFallback(t *testing.T) {
	s := newTestSession()
	ticket, _ := s.BeginChat("hello")
	require.True(t, s.FinishChat(ticket, "  ", nil))

	transcript := s.Transcript()
	assert.Equal(t, curator.ChatFallback, transcript[len(transcript)-1].Text)
	assert.False(t, transcript[len(transcript)-1].IsError)
}

func TestTranscriptIsACopy(t *testing.T) {
	s := newTestSession()
	got := s.Transcript()
	got[0].Text = "mutated"
	assert.Equal(t, "Greetings.", s.Transcript()[0].Text)
}

func TestStaleRecommendationDiscarded(t *testing.T) {
	s := newTestSession()

	first := s.BeginRecommend("rainy")
	second := s.BeginRecommend("sunny")
	assert.Equal(t, "sunny", s.Mood())

	assert.False(t, s.FinishRecommend(first, []library.Book{{ID: "old"}}))
	assert.Empty(t, s.Books())
	assert.True(t, s.Pending(KindRecommend))

	assert.True(t, s.FinishRecommend(second, []library.Book{{ID: "a"}, {ID: "a"}, {ID: "b"}}))
	assert.Len(t, s.Books(), 2)
	assert.False(t, s.Pending(KindRecommend))

	assert.False(t, s.FinishRecommend(second, nil), "a ticket applies once")
}

func TestFinishRecommendNilBecomesEmptyShelf(t *testing.T) {
	s := newTestSession()
	ticket := s.BeginRecommend("x")
	require.True(t, s.FinishRecommend(ticket, nil))
	assert.NotNil(t, s.Books())
	assert.Empty(t, s.Books())
}

func TestAnalysisLifecycle(t *testing.T) {
	s := newTestSession()

	first := s.BeginAnalysis("roses are red")
	require.True(t, s.FinishAnalysis(first, &library.PoetryAnalysis{Tone: "tender"}, nil))
	assert.Equal(t, "tender", s.Analysis().Tone)

	second := s.BeginAnalysis("violets are blue")
	assert.Nil(t, s.Analysis(), "a new request clears the old result")
	assert.Equal(t, "violets are blue", s.Poem())

	require.True(t, s.FinishAnalysis(second, nil, errors.New("upstream")))
	assert.Nil(t, s.Analysis())
	assert.EqualError(t, s.AnalysisErr(), "upstream")

	third := s.BeginAnalysis("again")
	assert.NoError(t, s.AnalysisErr())
	s.Cancel(KindAnalysis)
	assert.False(t, s.Pending(KindAnalysis))
	assert.False(t, s.FinishAnalysis(third, &library.PoetryAnalysis{Tone: "late"}, nil))
	assert.Nil(t, s.Analysis())
}

func TestTicketKindMismatch(t *testing.T) {
	s := newTestSession()
	ticket := s.BeginRecommend("x")
	assert.False(t, s.FinishAnalysis(ticket, &library.PoetryAnalysis{Tone: "x"}, nil))
	assert.False(t, s.FinishChat(ticket, "x", nil))
	assert.True(t, s.Pending(KindRecommend))
}

func TestKindsAreIndependent(t *testing.T) {
	s := newTestSession()
	chat, _ := s.BeginChat("hi")
	rec := s.BeginRecommend("joy")

	assert.True(t, s.FinishRecommend(rec, nil))
	assert.True(t, s.FinishChat(chat, "hello", nil))
}
