// Package trafilatura provides a content extractor backed by
// go-trafilatura's boilerplate detection. It is the fallback strategy for
// pages where selector-based extraction finds no main-content container,
// so it favors recall: whatever trafilatura identifies as body content is
// returned, with the page's metadata title attached.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/docdex/docdex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Documentation
// pages are heavy on code listings, so trafilatura's own readability and
// DOM fallbacks stay enabled to avoid dropping sparse-prose pages.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		IncludeImages:   false,
		ExcludeComments: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "extract content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, docdex.Errorf(docdex.EINTERNAL, "render content: %v", err)
		}
	}

	return &docdex.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
