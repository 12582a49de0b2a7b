// Package catalog serves the store's featured shelf.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/curator/internal/library"
)

//go:embed books.yaml
var booksYAML []byte

var featured = mustLoad(booksYAML)

func mustLoad(data []byte) []library.Book {
	books, err := Load(data)
	if err != nil {
		panic(err)
	}
	return books
}

// Load decodes a YAML list of books and checks that ids are present and
// unique and prices are not negative.
func Load(data []byte) ([]library.Book, error) {
	var books []library.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(books))
	for i, b := range books {
		if b.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, b.ID)
		}
		if b.Price < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative price", b.ID)
		}
		seen[b.ID] = true
	}
	return books, nil
}

// Featured returns a copy of the featured shelf.
func Featured() []library.Book {
	out := make([]library.Book, len(featured))
	for i, b := range featured {
		b.Tags = append([]string(nil), b.Tags...)
		out[i] = b
	}
	return out
}

// Lookup finds a featured book by id.
func Lookup(id string) (library.Book, bool) {
	for _, b := range Featured() {
		if b.ID == id {
			return b, true
		}
	}
	return library.Book{}, false
}

// Tags returns every tag on the shelf, sorted and without repeats.
func Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, b := range featured {
		for _, t := range b.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// ByTag returns featured books carrying tag, case-insensitively.
func ByTag(tag string) []library.Book {
	out := []library.Book{}
	for _, b := range Featured() {
		for _, t := range b.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}
