package curator

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/sant0-9/curator/internal/library"
)

// ParseRecommendations reads a recommendation reply. Entries that miss a
// required field or carry the wrong JSON type are dropped one by one; the
// call only fails when no array can be recovered, or when a non-empty array
// yields nothing usable.
func ParseRecommendations(text string) ([]library.RawRecommendation, error) {
	raw, ok := recoverJSON(text, '[', ']')
	if !ok {
		return nil, &MalformedResponseError{Op: "recommend", Reason: "no JSON array found", Snippet: snippet(text)}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &MalformedResponseError{Op: "recommend", Reason: "decode array", Snippet: snippet(raw), Err: err}
	}

	recs := make([]library.RawRecommendation, 0, len(entries))
	for _, entry := range entries {
		rec, err := decodeRecommendation(entry)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	if len(entries) > 0 && len(recs) == 0 {
		return nil, &MalformedResponseError{Op: "recommend", Reason: "no usable entries", Snippet: snippet(raw)}
	}
	return recs, nil
}

var errMissingField = errors.New("missing required field")

type recommendationEntry struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

func decodeRecommendation(entry json.RawMessage) (library.RawRecommendation, error) {
	var e recommendationEntry
	if err := json.Unmarshal(entry, &e); err != nil {
		return library.RawRecommendation{}, err
	}
	if e.Title == nil || e.Author == nil || e.Description == nil || e.Tags == nil {
		return library.RawRecommendation{}, errMissingField
	}
	title := strings.TrimSpace(*e.Title)
	author := strings.TrimSpace(*e.Author)
	if title == "" || author == "" {
		return library.RawRecommendation{}, errMissingField
	}

	tags := make([]string, 0, len(*e.Tags))
	for _, tag := range *e.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return library.RawRecommendation{
		Title:       title,
		Author:      author,
		Description: strings.TrimSpace(*e.Description),
		Tags:        tags,
	}, nil
}

// ParseAnalysis reads an analysis reply. Absent or mistyped fields become
// zero values and non-string themes are skipped, but a reply with nothing
// populated is rejected.
func ParseAnalysis(text string) (*library.PoetryAnalysis, error) {
	raw, ok := recoverJSON(text, '{', '}')
	if !ok {
		return nil, &MalformedResponseError{Op: "analyze", Reason: "no JSON object found", Snippet: snippet(text)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &MalformedResponseError{Op: "analyze", Reason: "decode object", Snippet: snippet(raw), Err: err}
	}

	a := &library.PoetryAnalysis{
		Tone:      stringField(fields, "tone"),
		Themes:    stringList(fields["themes"]),
		Structure: stringField(fields, "structure"),
		Critique:  stringField(fields, "critique"),
	}
	if a.Empty() {
		return nil, &MalformedResponseError{Op: "analyze", Reason: "no populated field", Snippet: snippet(raw)}
	}
	return a, nil
}

func stringField(fields map[string]json.RawMessage, name string) string {
	var s string
	if err := json.Unmarshal(fields[name], &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func stringList(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// recoverJSON finds a JSON value that opens with open in text. Tries, in
// order: the whole text, a fenced code block, the balanced value starting at
// the first open, and the span from the first open to the last close.
func recoverJSON(text string, open, close byte) (string, bool) {
	text = strings.TrimSpace(text)

	candidates := []string{text}
	if block, ok := fencedBlock(text); ok {
		candidates = append(candidates, block)
	}
	if start := strings.IndexByte(text, open); start >= 0 {
		if end := balancedEnd(text, start, open, close); end > start {
			candidates = append(candidates, text[start:end+1])
		}
		if end := strings.LastIndexByte(text, close); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	for _, c := range candidates {
		if len(c) > 0 && c[0] == open && json.Valid([]byte(c)) {
			return c, true
		}
	}
	return "", false
}

// fencedBlock returns the body of the first ``` block, minus any language tag.
func fencedBlock(text string) (string, bool) {
	idx := strings.Index(text, "```")
	if idx < 0 {
		return "", false
	}
	after := text[idx+3:]
	end := strings.Index(after, "```")
	if end < 0 {
		return "", false
	}
	body := after[:end]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[{") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body), true
}

// balancedEnd returns the index of the close matching text[start], skipping
// brackets inside strings, or -1.
func balancedEnd(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
