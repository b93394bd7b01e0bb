package docdex

import (
	"regexp"
	"strings"
)

// Cleaning patterns for converted documentation text. Code fences and table
// rows are scraping noise in a retrieval corpus, not signal; line-number
// bursts are artifacts of source-code listings embedded in HTML.
var (
	fenceRE = regexp.MustCompile("(?s)`{3,}.*?`{3,}")
	pipeRowRE = regexp.MustCompile(`(?m)^[ \t]*\|.*\|[ \t]*$`)
	lineNoBurstRE = regexp.MustCompile(`(?:^|\s)(?:\d{1,4}\s+){5,}\d{1,4}(?:\s|$)`)
	multiWSRE = regexp.MustCompile(`\s+`)
	paraBreakRE = regexp.MustCompile(`\n[ \t]*\n`)
)

// stripNoise removes fenced code blocks, table rows, line-number bursts and
// stray pipe/backtick characters. Paragraph structure is left alone.
func stripNoise(s string) string {
	s = fenceRE.ReplaceAllString(s, " ")
	s = pipeRowRE.ReplaceAllString(s, " ")
	s = lineNoBurstRE.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.ReplaceAll(s, "`", " ")
	return s
}

// CleanDisplay normalizes text for display: noise stripped, all whitespace
// runs collapsed to single spaces. Used for search snippets and page-level
// snapshots.
func CleanDisplay(s string) string {
	s = stripNoise(s)
	return strings.TrimSpace(multiWSRE.ReplaceAllString(s, " "))
}

// CleanProse normalizes text for chunking: noise stripped, whitespace
// collapsed within paragraphs, blank-line paragraph breaks preserved so the
// chunker can split on them.
func CleanProse(s string) string {
	s = stripNoise(s)

	paras := paraBreakRE.Split(s, -1)
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = strings.TrimSpace(multiWSRE.ReplaceAllString(p, " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
