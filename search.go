package docdex

// Search result bounds. K is clamped to [1, MaxSearchResults]; candidates
// are over-fetched at three times K before post-filters run so that filters
// do not starve the result list.
const (
	DefaultSearchResults = 8
	MaxSearchResults     = 50
	SearchOverFetch      = 3
)

// SearchOptions narrows a query beyond its terms. All filters are
// conjunctive.
type SearchOptions struct {
	// K is the maximum number of hits to return. Zero means
	// DefaultSearchResults.
	K int

	// Site restricts hits to one source site.
	Site string

	// Keywords must all appear (case-insensitively) in a hit's title or
	// snippet.
	Keywords []string

	// Heading must appear (case-insensitively) in a hit's title; a hit
	// whose snippet contains it also qualifies.
	Heading string
}

// SearchHit is one ranked result.
type SearchHit struct {
	Title string `json:"title"`

	// URL is the canonical public address, anchor included.
	URL string `json:"url"`

	// Anchor is the hit's section anchor, when it has one.
	Anchor string `json:"anchor,omitempty"`

	// DisplayURL is the local address the content was actually served
	// from.
	DisplayURL string `json:"display_url"`

	Snippet    string  `json:"snippet"`
	Page       string  `json:"page"`
	SourceSite string  `json:"source_site"`
	Score      float64 `json:"score"`
}

// Searcher ranks documentation chunks against a query.
type Searcher interface {
	Search(query string, opts SearchOptions) ([]SearchHit, error)
}
