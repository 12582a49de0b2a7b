package curator

import (
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Placeholders fills the Book fields a recommendation never carries.
// Nil fields fall back to the defaults below.
type Placeholders struct {
	ID    func() string
	Price func() float64
	Cover func(title string) string
}

const (
	minPriceCents = 1500
	maxPriceCents = 3000
)

// DefaultPlaceholders returns the stock id, price and cover generators.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		ID:    RecommendationID,
		Price: PlaceholderPrice,
		Cover: CoverURL,
	}
}

func (p Placeholders) withDefaults() Placeholders {
	d := DefaultPlaceholders()
	if p.ID == nil {
		p.ID = d.ID
	}
	if p.Price == nil {
		p.Price = d.Price
	}
	if p.Cover == nil {
		p.Cover = d.Cover
	}
	return p
}

// RecommendationID mints a fresh id for a synthesized book.
func RecommendationID() string {
	return "rec-" + uuid.NewString()
}

// PlaceholderPrice picks a whole-cent price in [15.00, 30.00).
func PlaceholderPrice() float64 {
	return float64(minPriceCents+rand.IntN(maxPriceCents-minPriceCents)) / 100
}

// CoverURL derives a stable cover image from the title.
func CoverURL(title string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(coverSlug(title)) + "/300/450"
}

// coverSlug is the title with all whitespace removed.
func coverSlug(title string) string {
	return strings.Join(strings.Fields(title), "")
}
