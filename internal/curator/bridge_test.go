package curator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/curator/internal/config"
	"github.com/sant0-9/curator/internal/library"
	"github.com/sant0-9/curator/internal/llm"
	"github.com/sant0-9/curator/internal/llm/llmtest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecommendRainyAfternoon(t *testing.T) {
	fake := llmtest.Reply(`[{"title":"Rain","author":"A","description":"...","tags":["calm"]}]`)
	b := New(fake, WithLogger(quietLogger()))

	books := b.Recommend(context.Background(), "a quiet rainy afternoon")

	require.Len(t, books, 1)
	book := books[0]
	assert.Equal(t, "Rain", book.Title)
	assert.Equal(t, "A", book.Author)
	assert.Equal(t, "...", book.Description)
	assert.Equal(t, []string{"calm"}, book.Tags)
	assert.True(t, strings.HasPrefix(book.ID, "rec-"))
	assert.GreaterOrEqual(t, book.Price, 15.0)
	assert.Less(t, book.Price, 30.0)
	assert.Contains(t, book.CoverURL, "/seed/Rain/")

	req := fake.Last()
	require.NotNil(t, req)
	assert.True(t, req.WantsJSON())
	assert.Contains(t, req.Input(), "a quiet rainy afternoon")
	assert.Equal(t, DefaultTemperature, req.Temperature)
}

func TestRecommendFailsSoft(t *testing.T) {
	tests := []struct {
		name     string
		provider *llmtest.Fake
	}{
		{"malformed json", llmtest.Reply(`[{"title":"Rain",`)},
		{"prose only", llmtest.Reply("I could not think of anything.")},
		{"missing required fields", llmtest.Reply(`[{"title":"Rain"}]`)},
		{"upstream error", llmtest.Fail(errors.New("connection reset"))},
		{"blank reply", llmtest.Reply("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := New(tt.provider, WithLogger(quietLogger())).Recommend(context.Background(), "joyful")
			assert.NotNil(t, books)
			assert.Empty(t, books)
		})
	}
}

func TestRecommendBlankMoodSkipsCall(t *testing.T) {
	fake := llmtest.Reply("[]")
	books := New(fake).Recommend(context.Background(), "   ")
	assert.NotNil(t, books)
	assert.Empty(t, books)
	assert.Equal(t, 0, fake.Calls())
}

func TestRecommendPlaceholders(t *testing.T) {
	fake := llmtest.Reply(`[
		{"title":"Rain","author":"A","description":"d","tags":[]},
		{"title":"Snow","author":"B","description":"d","tags":[]}
	]`)
	n := 0
	b := New(fake, WithLogger(quietLogger()), WithPlaceholders(Placeholders{
		ID: func() string {
			n++
			return "fixed-" + string(rune('0'+n))
		},
		Price: func() float64 { return 19.99 },
	}))

	books := b.Recommend(context.Background(), "cold")
	require.Len(t, books, 2)
	assert.Equal(t, "fixed-1", books[0].ID)
	assert.Equal(t, "fixed-2", books[1].ID)
	assert.Equal(t, 19.99, books[1].Price)
	assert.Equal(t, CoverURL("Snow"), books[1].CoverURL)
}

func TestRecommendIDsUnique(t *testing.T) {
	fake := llmtest.Reply(`[
		{"title":"Rain","author":"A","description":"d","tags":[]},
		{"title":"Rain","author":"A","description":"d","tags":[]},
		{"title":"Rain","author":"A","description":"d","tags":[]}
	]`)
	books := New(fake, WithLogger(quietLogger())).Recommend(context.Background(), "déjà vu")
	require.Len(t, books, 3)
	assert.Len(t, library.DedupeBooks(books), 3)
	assert.Equal(t, books[0].CoverURL, books[2].CoverURL)
}

func TestAnalyze(t *testing.T) {
	fake := llmtest.Reply(`{"tone":"tender","themes":["love"],"structure":"quatrain","critique":"simple"}`)
	b := New(fake)

	a, err := b.Analyze(context.Background(), "roses are red")
	require.NoError(t, err)
	assert.Equal(t, &library.PoetryAnalysis{Tone: "tender", Themes: []string{"love"}, Structure: "quatrain", Critique: "simple"}, a)

	req := fake.Last()
	require.Len(t, req.Parts, 2)
	assert.Equal(t, "roses are red", req.Parts[1])
	assert.NotContains(t, req.Parts[0], "roses")
}

func TestAnalyzeNetworkError(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	b := New(llmtest.Fail(netErr))

	a, err := b.Analyze(context.Background(), "roses are red")
	assert.Nil(t, a)
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.ErrorIs(t, err, netErr)

	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "analyze", up.Op)
}

func TestAnalyzeMalformed(t *testing.T) {
	for _, reply := range []string{`{"tone": `, `not json at all`, `{}`, `["tone"]`} {
		a, err := New(llmtest.Reply(reply)).Analyze(context.Background(), "roses are red")
		assert.Nil(t, a, reply)
		assert.True(t, IsMalformed(err), "reply %q gave %v", reply, err)
	}
}

// replies answers call n with texts[n], repeating the last one.
func replies(texts ...string) *llmtest.Fake {
	n := 0
	return &llmtest.Fake{Handler: func(*llm.CompletionRequest) (string, error) {
		r := texts[min(n, len(texts)-1)]
		n++
		return r, nil
	}}
}

func TestAnalyzeRetryAfterMalformedReachesProvider(t *testing.T) {
	fake := replies("sorry, not JSON", `{"tone":"wistful"}`)
	b := New(fake, WithCache(64))

	_, err := b.Analyze(context.Background(), "roses are red")
	require.True(t, IsMalformed(err))

	a, err := b.Analyze(context.Background(), "roses are red")
	require.NoError(t, err)
	assert.Equal(t, "wistful", a.Tone)
	assert.Equal(t, 2, fake.Calls())
}

func TestAnalyzeCachesParsedResult(t *testing.T) {
	fake := llmtest.Reply(`{"tone":"tender","themes":["love"]}`)
	b := New(fake, WithCache(8))

	first, err := b.Analyze(context.Background(), "roses are red")
	require.NoError(t, err)
	first.Themes[0] = "changed"

	second, err := b.Analyze(context.Background(), "roses are red")
	require.NoError(t, err)
	assert.Equal(t, []string{"love"}, second.Themes)
	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, 1, b.analyses.size())

	_, err = b.Analyze(context.Background(), "violets are blue")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls())
}

func TestRecommendRetryAfterEmptyShelfReachesProvider(t *testing.T) {
	fake := replies(`[{"title":"Rain"}]`, `[{"title":"Rain","author":"A","description":"d","tags":["calm"]}]`)
	b := New(fake, WithCache(64), WithLogger(quietLogger()))

	assert.Empty(t, b.Recommend(context.Background(), "rainy"))
	require.Len(t, b.Recommend(context.Background(), "rainy"), 1)

	books := b.Recommend(context.Background(), "rainy")
	require.Len(t, books, 1)
	assert.Equal(t, 2, fake.Calls())

	books[0].Tags[0] = "changed"
	assert.Equal(t, []string{"calm"}, b.Recommend(context.Background(), "rainy")[0].Tags)
}

func TestCacheDisabledByDefault(t *testing.T) {
	fake := llmtest.Reply(`{"tone":"tender"}`)
	b := New(fake)
	for i := 0; i < 2; i++ {
		_, err := b.Analyze(context.Background(), "roses are red")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fake.Calls())
}

func TestAnalyzeEmptyPoem(t *testing.T) {
	fake := llmtest.Reply(`{"tone":"x"}`)
	_, err := New(fake).Analyze(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyPoem)
	assert.Equal(t, 0, fake.Calls())
}

func TestChatPreservesHistoryOrder(t *testing.T) {
	fake := llmtest.Reply("Try Mary Oliver's Wild Geese.")
	b := New(fake, WithModel("gemini-2.5-flash"))

	history := []library.ChatMessage{
		{Role: library.RoleModel, Text: "Greetings."},
		{Role: library.RoleUser, Text: "I feel low."},
		{Role: library.RoleModel, Text: "I am sorry to hear it."},
	}
	reply, err := b.Chat(context.Background(), history, "recommend something joyful")
	require.NoError(t, err)
	assert.Equal(t, "Try Mary Oliver's Wild Geese.", reply)

	req := fake.Last()
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.Equal(t, DefaultTemperature, req.Temperature)
	assert.Contains(t, req.System, "Curator")
	assert.False(t, req.WantsJSON())

	turns := req.Turns()
	require.Len(t, turns, 5)
	assert.Equal(t, llm.Turn{Role: llm.RoleModel, Text: "Greetings."}, turns[1])
	assert.Equal(t, llm.Turn{Role: llm.RoleUser, Text: "I feel low."}, turns[2])
	assert.Equal(t, llm.Turn{Role: llm.RoleModel, Text: "I am sorry to hear it."}, turns[3])
	assert.Equal(t, llm.Turn{Role: llm.RoleUser, Text: "recommend something joyful"}, turns[4])
}

func TestChatForwardsHistoryAsGiven(t *testing.T) {
	fake := llmtest.Reply("ok")
	history := []library.ChatMessage{
		{Role: library.RoleUser, Text: "hello"},
		{Role: library.RoleModel, Text: ChatApology, IsError: true},
	}
	_, err := New(fake).Chat(context.Background(), history, "again")
	require.NoError(t, err)
	assert.Equal(t, []llm.Turn{
		{Role: llm.RoleUser, Text: "hello"},
		{Role: llm.RoleModel, Text: ChatApology},
	}, fake.Last().Messages)
}

func TestChatErrors(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		fake := llmtest.Reply("hi")
		_, err := New(fake).Chat(context.Background(), nil, " ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Equal(t, 0, fake.Calls())
	})

	t.Run("upstream failure", func(t *testing.T) {
		_, err := New(llmtest.Fail(errors.New("503"))).Chat(context.Background(), nil, "hi")
		assert.True(t, IsUpstream(err))
	})

	t.Run("blank reply", func(t *testing.T) {
		_, err := New(llmtest.Reply("")).Chat(context.Background(), nil, "hi")
		assert.True(t, IsUpstream(err))
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})
}

func TestTimeoutIsApplied(t *testing.T) {
	b := New(llmtest.Hanging(), WithTimeout(10*time.Millisecond))

	_, err := b.Chat(context.Background(), nil, "hi")
	assert.True(t, IsUpstream(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOptions(t *testing.T) {
	b := New(llmtest.Reply(""), WithTimeout(-1), WithTemperature(3), WithSystemInstruction("custom"))
	assert.Equal(t, DefaultTimeout, b.timeout)
	assert.Equal(t, 1.0, b.temperature)
	assert.Equal(t, "custom", b.system)

	b = New(llmtest.Reply(""), WithTimeout(time.Hour))
	assert.Equal(t, MaxTimeout, b.timeout)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "gemini-2.5-pro"
	cfg.Timeout = 5 * time.Second
	cfg.Temperature = 0.2

	b := FromConfig(llmtest.Reply("x"), cfg, nil)
	assert.Equal(t, "gemini-2.5-pro", b.model)
	assert.Equal(t, 5*time.Second, b.timeout)
	assert.Equal(t, 0.2, b.temperature)
	assert.NotNil(t, b.logger)
	assert.NotNil(t, b.analyses)
}
