package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeBooks(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Leaves of Grass"},
		{ID: "2", Title: "Ariel"},
		{ID: "1", Title: "Leaves of Grass (copy)"},
		{ID: "3", Title: "Devotions"},
	}

	got := DedupeBooks(books)

	assert.Len(t, got, 3)
	assert.Equal(t, "Leaves of Grass", got[0].Title)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestPoetryAnalysisEmpty(t *testing.T) {
	var nilAnalysis *PoetryAnalysis
	assert.True(t, nilAnalysis.Empty())
	assert.True(t, (&PoetryAnalysis{}).Empty())
	assert.False(t, (&PoetryAnalysis{Themes: []string{"loss"}}).Empty())
	assert.False(t, (&PoetryAnalysis{Tone: "wistful"}).Empty())
}
