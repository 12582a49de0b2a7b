package library

// Book is a single title on a shelf, from the catalog or synthesized
// from a recommendation.
type Book struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Author      string   `json:"author" yaml:"author"`
	Price       float64  `json:"price" yaml:"price"`
	CoverURL    string   `json:"coverUrl" yaml:"cover_url"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// RawRecommendation is one validated entry of a recommendation response,
// before placeholder fields are filled in.
type RawRecommendation struct {
	Title       string
	Author      string
	Description string
	Tags        []string
}

// DedupeBooks drops books whose ID was already seen, keeping the first.
// Order is preserved.
func DedupeBooks(books []Book) []Book {
	seen := make(map[string]bool, len(books))
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}
