package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
	"golang.org/x/net/html"
)

// Ensure Segmenter implements docdex.Segmenter at compile time.
var _ docdex.Segmenter = (*Segmenter)(nil)

// Segmenter splits a page into sections at h1-h3 headings that carry a
// stable id attribute.
type Segmenter struct{}

// NewSegmenter creates a new Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment returns the page's anchored sections in document order. A heading
// at level L owns everything up to the next heading at level <= L; deeper
// headings stay inside the section body. A page without anchored h1-h3
// headings yields a single whole-page segment.
func (s *Segmenter) Segment(rawHTML string) ([]docdex.Segment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	headings := doc.Find("h1[id],h2[id],h3[id]")
	if headings.Length() == 0 {
		return []docdex.Segment{{BodyHTML: rawHTML}}, nil
	}

	var segments []docdex.Segment
	headings.Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.AttrOr("id", "")
		if anchor == "" || len(sel.Nodes) == 0 {
			return
		}
		node := sel.Nodes[0]
		level := headingLevel(node)
		if level < 1 || level > 3 {
			return
		}

		segments = append(segments, docdex.Segment{
			Anchor:   anchor,
			Title:    collapseWhitespace(sel.Text()),
			Level:    level,
			BodyHTML: sectionBody(node, level),
		})
	})

	if len(segments) == 0 {
		return []docdex.Segment{{BodyHTML: rawHTML}}, nil
	}
	return segments, nil
}

// sectionBody renders the heading's following siblings until a heading at
// the same or a shallower level closes the section. Only anchored headings
// close a section: a heading without an id is not a split point, so its
// content stays in the open section.
func sectionBody(heading *html.Node, level int) string {
	var b bytes.Buffer
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if l := headingLevel(sib); l >= 1 && l <= level && hasID(sib) {
			break
		}
		// Render errors on individual nodes leave a gap rather than
		// failing the whole section.
		_ = html.Render(&b, sib)
	}
	return b.String()
}

// hasID reports whether an element carries a non-empty id attribute.
func hasID(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			return true
		}
	}
	return false
}

// headingLevel returns 1-6 for h1-h6 element nodes, 0 otherwise.
func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	name := strings.ToLower(n.Data)
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '6' {
		return 0
	}
	return int(name[1] - '0')
}
