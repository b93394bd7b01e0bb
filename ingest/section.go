package ingest

import (
	"strings"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/goquery"
)

// ExtractSection returns the text of the section identified by anchor in a
// raw page, dispatching on the page's source kind. The text is capped at
// goquery.MaxSectionChars; truncated reports whether the cap was hit. An
// anchor that does not exist on the page yields empty text, not an error.
func ExtractSection(kind docdex.SourceKind, raw, anchor string) (text string, truncated bool, err error) {
	switch kind {
	case docdex.SourceHTML:
		text, truncated = goquery.ExtractSection(raw, anchor)
		return text, truncated, nil
	case docdex.SourceMarkdown:
		text, truncated = markdownSection(raw, anchor)
		return text, truncated, nil
	}
	return "", false, docdex.Errorf(docdex.EINVALID, "no section extractor for source kind %q", kind)
}

func markdownSection(raw, anchor string) (string, bool) {
	page, err := MarkdownParser{}.Parse(raw)
	if err != nil {
		return "", false
	}

	for _, section := range page.Sections {
		if section.Anchor != anchor || anchor == "" {
			continue
		}
		text := strings.TrimSpace(section.Text)
		if len(text) > goquery.MaxSectionChars {
			return strings.TrimSpace(text[:goquery.MaxSectionChars]), true
		}
		return text, false
	}
	return "", false
}
