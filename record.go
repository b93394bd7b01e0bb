package docdex

import "strings"

// DocumentRecord is the atomic unit stored and indexed: one token-bounded
// chunk of a section's cleaned prose, with enough metadata to build a deep
// link back to the source page.
//
// Records are created in bulk during a corpus build and never mutated; a
// rebuild replaces them wholesale. The record's position in the corpus pairs
// it with the same position in the BM25 index.
type DocumentRecord struct {
	// Title is the nearest enclosing heading text, or the page filename
	// when the section has no heading.
	Title string `json:"title"`

	// Anchor is the stable fragment identifier of the heading within its
	// page. Empty for whole-page records.
	Anchor string `json:"anchor,omitempty"`

	// HeadingLevel is 1-3 for records under a heading, 0 for whole-page
	// records.
	HeadingLevel int `json:"heading_level"`

	// Text is the cleaned prose for this chunk. Never empty.
	Text string `json:"text"`

	// URL is the canonical address: page URL plus "#anchor" if an anchor
	// is present.
	URL string `json:"url"`

	// Page is the site-relative path of the source page, used as a
	// grouping key and for local resolution.
	Page string `json:"page"`

	// SourceSite identifies which corpus the record belongs to.
	SourceSite string `json:"source_site"`
}

// Validate returns an error if the record contains invalid fields.
func (r *DocumentRecord) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return Errorf(EINVALID, "record text required")
	}
	if r.Page == "" {
		return Errorf(EINVALID, "record page path required")
	}
	if r.SourceSite == "" {
		return Errorf(EINVALID, "record source site required")
	}
	if r.HeadingLevel < 0 {
		return Errorf(EINVALID, "record heading level must be >= 0")
	}
	return nil
}

// IndexedText returns the text submitted to the index for this record.
// The title is prefixed once so that title matches score higher; the same
// composition must be used every time the record is (re)indexed.
func (r *DocumentRecord) IndexedText() string {
	if r.Title == "" {
		return r.Text
	}
	return r.Title + "\n\n" + r.Text
}

// SiteConfig describes one documentation corpus: where its raw pages live
// on disk and how to canonicalize page URLs.
type SiteConfig struct {
	// ID is the corpus identifier recorded on every DocumentRecord
	// (e.g. "pydantic", "pydantic_ai").
	ID string

	// Root is the local directory holding the site's raw pages.
	Root string

	// BaseURL is the public base URL used to build canonical record URLs.
	BaseURL string

	// Kind selects the ingestion adapter for the site's pages.
	Kind SourceKind
}

// SourceKind identifies the raw page format of a site.
type SourceKind string

// Source kinds for SiteConfig.
const (
	SourceHTML     SourceKind = "html"
	SourceMarkdown SourceKind = "markdown"
)

// Validate returns an error if the site config contains invalid fields.
func (c *SiteConfig) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "site ID required")
	}
	if c.Root == "" {
		return Errorf(EINVALID, "site root directory required")
	}
	if c.BaseURL == "" {
		return Errorf(EINVALID, "site base URL required")
	}
	if c.Kind != SourceHTML && c.Kind != SourceMarkdown {
		return Errorf(EINVALID, "unknown source kind %q", c.Kind)
	}
	return nil
}

// CanonicalURL returns the canonical address for a page-relative path and
// optional anchor.
func (c *SiteConfig) CanonicalURL(page, anchor string) string {
	url := strings.TrimSuffix(c.BaseURL, "/") + "/" + page
	if anchor != "" {
		url += "#" + anchor
	}
	return url
}

// DisplayBase returns the local URL prefix under which the site's pages are
// addressed in search results, e.g. "local://pydantic/".
func (c *SiteConfig) DisplayBase() string {
	return "local://" + strings.ReplaceAll(c.ID, "_", "-") + "/"
}
