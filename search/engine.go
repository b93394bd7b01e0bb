// Package search implements BM25-backed retrieval over the built corpora.
package search

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bm25"
)

// Snippet bounds: the raw excerpt is windowed around the first query-term
// match (or taken from the front of the chunk), then cleaned and capped for
// display.
const (
	snippetRawMax   = 800
	snippetBefore   = 120
	snippetAfter    = 200
	snippetCleanMax = 420
)

// Engine answers queries against one or more site corpora. It is immutable
// after loading and safe for concurrent use.
type Engine struct {
	corpora []corpus
}

type corpus struct {
	site    docdex.SiteConfig
	index   *bm25.Index
	records []docdex.DocumentRecord
}

var _ docdex.Searcher = (*Engine)(nil)

// NewEngine returns an empty engine; populate it with AddSite.
func NewEngine() *Engine {
	return &Engine{}
}

// AddSite attaches a built corpus to the engine. The index and records must
// be the matched pair produced by one build.
func (e *Engine) AddSite(site docdex.SiteConfig, index *bm25.Index, records []docdex.DocumentRecord) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if index == nil || index.Len() != len(records) {
		return docdex.Errorf(docdex.EINTERNAL, "index and records for site %q do not match", site.ID)
	}
	e.corpora = append(e.corpora, corpus{site: site, index: index, records: records})
	return nil
}

// Load builds an engine from the persisted artifacts of every given site.
// A site whose artifacts are missing makes the whole engine unavailable;
// partial engines silently hide a corpus.
func Load(dir string, sites []docdex.SiteConfig) (*Engine, error) {
	e := NewEngine()
	for _, site := range sites {
		index, records, err := bm25.Load(filepath.Join(dir, site.ID))
		if err != nil {
			return nil, err
		}
		if err := e.AddSite(site, index, records); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Sites returns the configured sites in load order.
func (e *Engine) Sites() []docdex.SiteConfig {
	sites := make([]docdex.SiteConfig, len(e.corpora))
	for i, c := range e.corpora {
		sites[i] = c.site
	}
	return sites
}

// RecordCount reports the number of indexed records for a site, or the
// total across sites when siteID is empty.
func (e *Engine) RecordCount(siteID string) int {
	n := 0
	for _, c := range e.corpora {
		if siteID == "" || c.site.ID == siteID {
			n += len(c.records)
		}
	}
	return n
}

type candidate struct {
	corpus int
	record int
	score  float64
}

// Search tokenizes the query with the index tokenizer, ranks every record
// by BM25 score, then applies the option filters to the top candidates.
// Ordering is deterministic: equal scores keep corpus build order.
func (e *Engine) Search(query string, opts docdex.SearchOptions) ([]docdex.SearchHit, error) {
	tokens := bm25.Tokenize(query)
	if len(tokens) == 0 {
		return nil, docdex.Errorf(docdex.EINVALID, "query contains no searchable terms")
	}
	if opts.Site != "" && !e.hasSite(opts.Site) {
		return nil, docdex.Errorf(docdex.EINVALID, "unknown site %q", opts.Site)
	}

	k := opts.K
	switch {
	case k <= 0:
		k = docdex.DefaultSearchResults
	case k > docdex.MaxSearchResults:
		k = docdex.MaxSearchResults
	}

	var cands []candidate
	for ci, c := range e.corpora {
		if opts.Site != "" && opts.Site != c.site.ID {
			continue
		}
		for ri, score := range c.index.Scores(tokens) {
			if score > 0 {
				cands = append(cands, candidate{corpus: ci, record: ri, score: score})
			}
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	if len(cands) > k*docdex.SearchOverFetch {
		cands = cands[:k*docdex.SearchOverFetch]
	}

	hits := make([]docdex.SearchHit, 0, k)
	for _, cand := range cands {
		c := e.corpora[cand.corpus]
		rec := c.records[cand.record]
		snippet := makeSnippet(rec.Text, tokens)

		if !matchesKeywords(rec.Title, snippet, opts.Keywords) {
			continue
		}
		if !matchesHeading(rec.Title, snippet, opts.Heading) {
			continue
		}

		hits = append(hits, docdex.SearchHit{
			Title:      rec.Title,
			URL:        rec.URL,
			Anchor:     rec.Anchor,
			DisplayURL: displayURL(c.site, rec),
			Snippet:    snippet,
			Page:       rec.Page,
			SourceSite: rec.SourceSite,
			Score:      cand.score,
		})
		if len(hits) == k {
			break
		}
	}
	return hits, nil
}

func (e *Engine) hasSite(id string) bool {
	for _, c := range e.corpora {
		if c.site.ID == id {
			return true
		}
	}
	return false
}

func displayURL(site docdex.SiteConfig, rec docdex.DocumentRecord) string {
	url := site.DisplayBase() + rec.Page
	if rec.Anchor != "" {
		url += "#" + rec.Anchor
	}
	return url
}

// makeSnippet windows the chunk text around the first occurrence of the
// joined query-token phrase, falling back to the chunk's front when the
// phrase does not appear, then cleans and caps the excerpt. All cut points
// land on rune boundaries.
func makeSnippet(text string, tokens []string) string {
	pos := strings.Index(strings.ToLower(text), strings.Join(tokens, " "))

	var raw string
	if pos < 0 {
		raw = text[:runeCut(text, snippetRawMax)]
	} else {
		start := runeCut(text, max(0, pos-snippetBefore))
		end := runeCut(text, pos+snippetAfter)
		raw = text[start:end]
	}

	s := docdex.CleanDisplay(raw)
	if len(s) > snippetCleanMax {
		s = strings.TrimSpace(s[:runeCut(s, snippetCleanMax)])
	}
	return s
}

// runeCut clamps a byte offset to the string and backs it up to the nearest
// rune start so slicing never splits a multi-byte rune.
func runeCut(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func matchesKeywords(title, snippet string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(title + " " + snippet)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}

func matchesHeading(title, snippet, heading string) bool {
	heading = strings.ToLower(strings.TrimSpace(heading))
	if heading == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), heading) ||
		strings.Contains(strings.ToLower(snippet), heading)
}
