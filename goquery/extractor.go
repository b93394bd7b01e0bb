// Package goquery provides HTML processing implementations backed by
// github.com/PuerkitoBio/goquery: boilerplate-stripping content extraction,
// heading-based section segmentation, and serving-time section lookup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
)

// mainSelectors identify the innermost main-content container, tried in
// priority order. The md-* entries cover MkDocs Material, the theme both
// corpora are built with.
var mainSelectors = []string{
	"main[role='main']",
	"main",
	"div.md-content__inner",
	"div.md-content",
	"div.md-main__inner",
	"article",
	"div.md-typeset",
}

// removeSelectors identify non-content structural elements stripped before
// any content is read.
var removeSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	".md-header",
	".md-sidebar",
	".md-nav",
	".md-footer",
	".md-search",
	".md-search__overlay",
	".md-tabs",
	".skip-link",
	".sr-only",
	".visually-hidden",
	"script",
	"style",
}

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor strips boilerplate from documentation HTML using a fixed
// deny-selector list and focuses on the innermost main-content container
// when one matches.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Malformed
// markup never fails: the worst case returns the input unchanged.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &docdex.ExtractResult{ContentHTML: rawHTML}, nil
	}

	for _, sel := range removeSelectors {
		doc.Find(sel).Remove()
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = collapseWhitespace(doc.Find("h1").First().Text())
	}

	content := doc.Selection
	for _, sel := range mainSelectors {
		if m := doc.Find(sel).First(); m.Length() > 0 {
			content = m
			break
		}
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		contentHTML = rawHTML
	}

	return &docdex.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// collapseWhitespace reduces all inner whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
