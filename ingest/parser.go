// Package ingest orchestrates the offline corpus build: parse raw pages
// into titled sections, clean and chunk their prose, and emit positional
// document records ready for indexing.
package ingest

import (
	"regexp"
	"strings"

	"github.com/docdex/docdex"
)

// Section is one titled unit of a parsed page, with its content already in
// Markdown. A section at level L spans everything up to the next heading at
// level L or shallower, so parent sections include their children's text.
type Section struct {
	Anchor string
	Title  string
	Level  int
	Text   string
}

// ParsedPage is the parser output for a single raw page.
type ParsedPage struct {
	// Title is the page-level title, surfaced on whole-page fetches.
	Title string

	// Markdown is the whole page as Markdown, kept for snapshots and
	// page fetches.
	Markdown string

	// ContentHTML is the extracted main content markup. Empty for
	// sources that are not HTML.
	ContentHTML string

	Sections []Section
}

// PageParser turns one raw page into sections. Implementations exist per
// source format; SiteConfig.Kind selects one.
type PageParser interface {
	Parse(raw string) (*ParsedPage, error)
}

// HTMLParser parses rendered HTML pages: extract main content, split by
// anchored headings, convert each section body to Markdown.
type HTMLParser struct {
	Extractor docdex.Extractor
	Segmenter docdex.Segmenter
	Converter docdex.Converter
}

var _ PageParser = (*HTMLParser)(nil)

func (p *HTMLParser) Parse(raw string) (*ParsedPage, error) {
	extracted, err := p.Extractor.Extract(raw)
	if err != nil {
		return nil, err
	}

	segments, err := p.Segmenter.Segment(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	page := &ParsedPage{Title: extracted.Title, ContentHTML: extracted.ContentHTML}
	if page.Markdown, err = p.Converter.Convert(extracted.ContentHTML); err != nil {
		return nil, err
	}

	for _, seg := range segments {
		text, err := p.Converter.Convert(seg.BodyHTML)
		if err != nil {
			return nil, err
		}
		page.Sections = append(page.Sections, Section{
			Anchor: seg.Anchor,
			Title:  seg.Title,
			Level:  seg.Level,
			Text:   text,
		})
	}
	return page, nil
}

// MarkdownParser parses Markdown source pages directly. ATX headings at
// depth 1-3 are split points; anchors are derived from heading text the way
// doc generators slugify them, so canonical URLs still deep-link correctly.
type MarkdownParser struct{}

var _ PageParser = (*MarkdownParser)(nil)

var atxHeadingRE = regexp.MustCompile(`^(#{1,3})\s+(.+?)\s*#*\s*$`)

func (MarkdownParser) Parse(raw string) (*ParsedPage, error) {
	lines := strings.Split(raw, "\n")

	type heading struct {
		line  int
		level int
		title string
	}
	var headings []heading
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := atxHeadingRE.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{line: i, level: len(m[1]), title: m[2]})
		}
	}

	page := &ParsedPage{Markdown: raw}
	for _, h := range headings {
		if h.level == 1 {
			page.Title = h.title
			break
		}
	}

	if len(headings) == 0 {
		page.Sections = []Section{{Text: raw}}
		return page, nil
	}

	for i, h := range headings {
		end := len(lines)
		for _, next := range headings[i+1:] {
			if next.level <= h.level {
				end = next.line
				break
			}
		}
		body := strings.Join(lines[h.line+1:end], "\n")
		page.Sections = append(page.Sections, Section{
			Anchor: slugify(h.title),
			Title:  h.title,
			Level:  h.level,
			Text:   body,
		})
	}
	return page, nil
}

var slugDropRE = regexp.MustCompile("[^a-z0-9 _-]")

// slugify derives a heading anchor the way mkdocs-style generators do:
// lowercase, punctuation stripped, spaces to hyphens.
func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugDropRE.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	return s
}
