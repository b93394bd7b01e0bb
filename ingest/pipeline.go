package ingest

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdex/docdex"
)

// Pipeline converts one raw page file into document records. It is safe for
// concurrent use: all fields are read-only after construction.
type Pipeline struct {
	Parsers   map[docdex.SourceKind]PageParser
	Counter   docdex.TokenCounter
	MaxTokens int

	// SnapshotDir, when set, receives one Markdown file per page as an
	// ingestion debugging aid. Snapshot failures are logged, never fatal.
	SnapshotDir string

	Logger *slog.Logger
}

// ExtractPage reads, parses, cleans and chunks a single page. The path must
// live under the site's root. Sections whose cleaned prose is empty produce
// no records.
func (p *Pipeline) ExtractPage(site docdex.SiteConfig, path string) ([]docdex.DocumentRecord, error) {
	parser := p.Parsers[site.Kind]
	if parser == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "no parser for source kind %q", site.Kind)
	}

	rel, err := filepath.Rel(site.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, docdex.Errorf(docdex.EINVALID, "page %s is outside site root %s", path, site.Root)
	}
	page := pagePath(rel)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "read page %s: %v", rel, err)
	}

	parsed, err := parser.Parse(string(raw))
	if err != nil {
		return nil, err
	}

	if p.SnapshotDir != "" {
		p.writeSnapshot(site, page, parsed.Markdown)
	}

	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = docdex.DefaultMaxTokens
	}

	var records []docdex.DocumentRecord
	for _, section := range parsed.Sections {
		text := docdex.CleanProse(section.Text)
		if text == "" {
			continue
		}

		title := section.Title
		if title == "" {
			title = titleFromPage(page)
		}

		for _, chunk := range docdex.ChunkText(text, maxTokens, p.Counter) {
			records = append(records, docdex.DocumentRecord{
				Title:        title,
				Anchor:       section.Anchor,
				HeadingLevel: section.Level,
				Text:         chunk,
				URL:          site.CanonicalURL(page, section.Anchor),
				Page:         page,
				SourceSite:   site.ID,
			})
		}
	}
	return records, nil
}

func (p *Pipeline) writeSnapshot(site docdex.SiteConfig, page, markdown string) {
	path := filepath.Join(p.SnapshotDir, site.ID, filepath.FromSlash(page)+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		p.Logger.Warn("snapshot write failed", slog.String("page", page), slog.Any("error", err))
		return
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		p.Logger.Warn("snapshot write failed", slog.String("page", page), slog.Any("error", err))
	}
}

// pagePath normalizes a root-relative file path into the site-relative page
// key: forward slashes, extension stripped, directory-index files collapsed
// onto their directory.
func pagePath(rel string) string {
	page := filepath.ToSlash(rel)
	page = strings.TrimSuffix(page, filepath.Ext(page))
	page = strings.TrimSuffix(page, "/index")
	if page == "index" {
		page = ""
	}
	return page
}

// titleFromPage derives a human-readable title from the page path when the
// section heading carries none.
func titleFromPage(page string) string {
	base := page[strings.LastIndex(page, "/")+1:]
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.TrimSpace(base)
}
