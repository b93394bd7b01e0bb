package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MaxSectionChars bounds the text returned by ExtractSection.
const MaxSectionChars = 4000

// ExtractSection locates the element carrying the given anchor id and
// returns its section text: the element's own text followed by the text of
// every subsequent element until a heading at the same or a shallower level.
// When the anchor is not a heading the level defaults to 2.
//
// A missing anchor returns empty text and no error; callers decide whether
// empty means not found. The result is capped at MaxSectionChars and the
// second return reports whether truncation occurred.
func ExtractSection(rawHTML, anchor string) (string, bool) {
	if anchor == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", false
	}

	target := findByID(doc, anchor)
	if target == nil {
		return "", false
	}

	level := headingLevel(target)
	if level == 0 {
		level = 2
	}

	parts := []string{collapseWhitespace(nodeText(target))}
	for n := nextAfterSubtree(target); n != nil; n = nextInDocument(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if l := headingLevel(n); l >= 1 && l <= level {
			break
		}
		if t := collapseWhitespace(directText(n)); t != "" {
			parts = append(parts, t)
		}
	}

	text := strings.Join(nonEmpty(parts), "\n")
	if len(text) > MaxSectionChars {
		return text[:MaxSectionChars], true
	}
	return text, false
}

// findByID returns the first element node whose id attribute equals anchor.
func findByID(doc *goquery.Document, anchor string) *html.Node {
	var found *html.Node
	doc.Find("[id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("id", "") == anchor && len(sel.Nodes) > 0 {
			found = sel.Nodes[0]
			return false
		}
		return true
	})
	return found
}

// nextInDocument walks to the next node in full document order, descending
// into children first so nested content (lists, wrapped paragraphs,
// admonitions) is visited. Each element contributes only its direct text,
// so the descent never double-counts.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return nextAfterSubtree(n)
}

// nextAfterSubtree walks to the next node in document order while skipping
// the subtree of the node it is leaving. Used for the first step out of the
// anchor element, whose subtree has already been read whole.
func nextAfterSubtree(n *html.Node) *html.Node {
	if n.NextSibling != nil {
		return n.NextSibling
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.NextSibling != nil {
			return p.NextSibling
		}
	}
	return nil
}

// nodeText returns the full text content of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// directText returns the text of a node's immediate children, leaving
// nested elements to their own document-order visit.
func directText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PageText extracts the readable text of a whole page, one text node per
// line, with scripts and styles removed. Used by the page-fetch tool.
func PageText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}
	doc.Find("script,style").Remove()
	if len(doc.Selection.Nodes) == 0 {
		return ""
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := collapseWhitespace(n.Data); t != "" {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Selection.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n")
}
