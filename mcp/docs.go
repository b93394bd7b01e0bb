package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/ingest"
)

// Page content bounds for docs_get and docs_api.
const (
	defaultGetChars = 8000
	minGetChars     = 200
	maxGetChars     = 100000
)

type DocsSearchInput struct {
	Query    string   `json:"query" jsonschema:"Search query"`
	K        int      `json:"k,omitempty" jsonschema:"Maximum number of hits (default 8, max 50)"`
	Site     string   `json:"site,omitempty" jsonschema:"Restrict to one site: pydantic or pydantic_ai"`
	Keywords []string `json:"keywords,omitempty" jsonschema:"Require all keywords in title or snippet"`
	Heading  string   `json:"heading,omitempty" jsonschema:"Require this text in the hit's heading"`
}

type DocsSearchOutput struct {
	Query string             `json:"query"`
	Hits  []docdex.SearchHit `json:"hits"`
}

func (s *Server) DocsSearch(ctx context.Context, req *mcp.CallToolRequest, in DocsSearchInput) (*mcp.CallToolResult, DocsSearchOutput, error) {
	hits, err := s.Engine.Search(in.Query, docdex.SearchOptions{
		K:        in.K,
		Site:     in.Site,
		Keywords: in.Keywords,
		Heading:  in.Heading,
	})
	if err != nil {
		return nil, DocsSearchOutput{}, toolError(err)
	}
	if hits == nil {
		hits = []docdex.SearchHit{}
	}
	return nil, DocsSearchOutput{Query: in.Query, Hits: hits}, nil
}

type DocsGetInput struct {
	URL      string `json:"url" jsonschema:"Page URL or path: a docs_search result URL, a public docs URL, or site/page"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Content cap in characters (default 8000)"`
}

type DocsGetOutput struct {
	URL     string `json:"url"`
	Site    string `json:"site"`
	Page    string `json:"page"`
	Content string `json:"content"`

	// HTML is the extracted main-content markup, present for HTML-backed
	// sites only. Subject to the same character cap as Content.
	HTML      string `json:"html,omitempty"`
	Truncated bool   `json:"truncated"`
}

func (s *Server) DocsGet(ctx context.Context, req *mcp.CallToolRequest, in DocsGetInput) (*mcp.CallToolResult, DocsGetOutput, error) {
	page, err := s.Pages.Read(in.URL)
	if err != nil {
		return nil, DocsGetOutput{}, toolError(err)
	}

	parsed, err := s.parsePage(page.Site.Kind, page.Raw)
	if err != nil {
		return nil, DocsGetOutput{}, toolError(err)
	}
	content, truncated := capChars(strings.TrimSpace(parsed.Markdown), in.MaxChars)
	html, htmlTruncated := capChars(parsed.ContentHTML, in.MaxChars)

	return nil, DocsGetOutput{
		URL:       page.URL,
		Site:      page.Site.ID,
		Page:      page.Path,
		Content:   content,
		HTML:      html,
		Truncated: truncated || htmlTruncated,
	}, nil
}

type DocsSectionInput struct {
	URL    string `json:"url" jsonschema:"Page URL or path, optionally carrying a #anchor fragment"`
	Anchor string `json:"anchor,omitempty" jsonschema:"Section anchor; overrides the URL fragment"`
}

type DocsSectionOutput struct {
	URL       string `json:"url"`
	Anchor    string `json:"anchor"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

func (s *Server) DocsSection(ctx context.Context, req *mcp.CallToolRequest, in DocsSectionInput) (*mcp.CallToolResult, DocsSectionOutput, error) {
	anchor := in.Anchor
	if anchor == "" {
		if i := strings.IndexByte(in.URL, '#'); i >= 0 {
			anchor = in.URL[i+1:]
		}
	}
	if anchor == "" {
		return nil, DocsSectionOutput{}, toolError(docdex.Errorf(docdex.EINVALID, "anchor required, either as argument or as URL fragment"))
	}

	page, err := s.Pages.Read(in.URL)
	if err != nil {
		return nil, DocsSectionOutput{}, toolError(err)
	}

	text, truncated, err := ingest.ExtractSection(page.Site.Kind, page.Raw, anchor)
	if err != nil {
		return nil, DocsSectionOutput{}, toolError(err)
	}
	return nil, DocsSectionOutput{
		URL:       page.URL + "#" + anchor,
		Anchor:    anchor,
		Text:      text,
		Truncated: truncated,
	}, nil
}

type DocsAPIInput struct {
	Symbol   string `json:"symbol" jsonschema:"Pydantic symbol name, e.g. BaseModel or field_validator"`
	Anchor   string `json:"anchor,omitempty" jsonschema:"Optional section anchor within the symbol's page"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Content cap in characters (default 8000)"`
}

type DocsAPIOutput struct {
	Symbol    string `json:"symbol"`
	URL       string `json:"url"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
}

func (s *Server) DocsAPI(ctx context.Context, req *mcp.CallToolRequest, in DocsAPIInput) (*mcp.CallToolResult, DocsAPIOutput, error) {
	pagePath, ok := LookupSymbol(in.Symbol)
	if !ok {
		return nil, DocsAPIOutput{}, toolError(docdex.Errorf(docdex.ENOTFOUND, "unknown symbol %q, known symbols: %s", in.Symbol, strings.Join(KnownSymbols(), ", ")))
	}

	page, err := s.Pages.Read(apiSite + "/" + pagePath)
	if err != nil {
		return nil, DocsAPIOutput{}, toolError(err)
	}

	url := page.URL
	var content string
	truncated := false
	if in.Anchor != "" {
		url += "#" + in.Anchor
		if content, truncated, err = ingest.ExtractSection(page.Site.Kind, page.Raw, in.Anchor); err != nil {
			return nil, DocsAPIOutput{}, toolError(err)
		}
	} else {
		parsed, err := s.parsePage(page.Site.Kind, page.Raw)
		if err != nil {
			return nil, DocsAPIOutput{}, toolError(err)
		}
		content, truncated = capChars(strings.TrimSpace(parsed.Markdown), in.MaxChars)
	}

	return nil, DocsAPIOutput{
		Symbol:    in.Symbol,
		URL:       url,
		Content:   content,
		Truncated: truncated,
	}, nil
}

// parsePage runs a raw page through the site's parser.
func (s *Server) parsePage(kind docdex.SourceKind, raw string) (*ingest.ParsedPage, error) {
	parser := s.Parsers[kind]
	if parser == nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "no parser for source kind %q", kind)
	}
	return parser.Parse(raw)
}

func capChars(s string, limit int) (string, bool) {
	switch {
	case limit <= 0:
		limit = defaultGetChars
	case limit < minGetChars:
		limit = minGetChars
	case limit > maxGetChars:
		limit = maxGetChars
	}
	if len(s) <= limit {
		return s, false
	}
	return strings.TrimSpace(s[:limit]), true
}
