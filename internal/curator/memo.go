package curator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sant0-9/curator/internal/llm"
)

// memo holds results that already parsed cleanly, so a rejected reply is
// never replayed. A nil memo caches nothing.
type memo[V any] struct {
	cache *lru.Cache[string, V]
}

func newMemo[V any](size int) *memo[V] {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil
	}
	return &memo[V]{cache: c}
}

func (m *memo[V]) get(key string) (V, bool) {
	if m == nil || key == "" {
		var zero V
		return zero, false
	}
	return m.cache.Get(key)
}

func (m *memo[V]) add(key string, v V) {
	if m == nil || key == "" {
		return
	}
	m.cache.Add(key, v)
}

func (m *memo[V]) size() int {
	if m == nil {
		return 0
	}
	return m.cache.Len()
}

// requestKey identifies a structured request for one provider. An empty
// key disables caching for that call.
func requestKey(provider string, req *llm.CompletionRequest) string {
	b, err := json.Marshal(struct {
		Provider    string
		Model       string
		Parts       []string
		Temperature float64
		Schema      map[string]any
	}{provider, req.Model, req.Parts, req.Temperature, req.ResponseSchema.JSONSchema()})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
