package mcp_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bm25"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	"github.com/docdex/docdex/ingest"
	"github.com/docdex/docdex/mcp"
	"github.com/docdex/docdex/search"
)

const modelsPage = `<html><head><title>Models - Pydantic</title></head><body><main>
<h1 id="models">Models</h1>
<p>Define models by subclassing BaseModel. Fields are declared with type annotations.</p>
<h2 id="basic-usage">Basic usage</h2>
<p>Instantiate the model with keyword arguments and it validates the input.</p>
</main></body></html>`

const baseModelPage = `<html><head><title>BaseModel - Pydantic</title></head><body><main>
<h1 id="basemodel">BaseModel</h1>
<p>API reference for BaseModel and its configuration.</p>
</main></body></html>`

const agentsPage = "# Agents\n\nAgents wrap a model, a system prompt and tools.\n\n## Running Agents\n\nRun them with run_sync or stream the output.\n"

func testServer(t *testing.T) *mcp.Server {
	t.Helper()

	htmlRoot := t.TempDir()
	mdRoot := t.TempDir()
	dataDir := t.TempDir()

	write := func(root, rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write(htmlRoot, "concepts/models/index.html", modelsPage)
	write(htmlRoot, "api/base_model/index.html", baseModelPage)
	write(mdRoot, "agents/index.md", agentsPage)

	sites := []docdex.SiteConfig{
		{ID: "pydantic", Root: htmlRoot, BaseURL: "https://docs.pydantic.dev/latest", Kind: docdex.SourceHTML},
		{ID: "pydantic_ai", Root: mdRoot, BaseURL: "https://ai.pydantic.dev", Kind: docdex.SourceMarkdown},
	}

	parsers := map[docdex.SourceKind]ingest.PageParser{
		docdex.SourceHTML: &ingest.HTMLParser{
			Extractor: goquery.NewExtractor(),
			Segmenter: goquery.NewSegmenter(),
			Converter: htmltomarkdown.NewConverter(),
		},
		docdex.SourceMarkdown: ingest.MarkdownParser{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := &ingest.Pipeline{Parsers: parsers, Counter: docdex.TokenEstimator{}, Logger: logger}
	builder := &ingest.Builder{Pipeline: pipeline, Logger: logger}
	records := &fs.RecordStore{Dir: dataDir}
	engine := search.NewEngine()

	for _, site := range sites {
		recs, err := builder.BuildSite(context.Background(), site)
		require.NoError(t, err)
		require.NotEmpty(t, recs)
		require.NoError(t, records.WriteRecords(site.ID, recs))

		texts := make([]string, len(recs))
		for i, r := range recs {
			texts[i] = r.IndexedText()
		}
		idx := bm25.Build(texts)
		require.NoError(t, bm25.Save(filepath.Join(dataDir, site.ID), idx, recs))
		require.NoError(t, engine.AddSite(site, idx, recs))
	}

	return &mcp.Server{
		Name:    "docdex",
		Version: "test",
		Engine:  engine,
		Pages:   &fs.PageStore{Sites: sites},
		Records: records,
		Parsers: parsers,
		DataDir: dataDir,
		Logger:  logger,
	}
}

func TestServer_DocsSearch(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	_, out, err := s.DocsSearch(context.Background(), nil, mcp.DocsSearchInput{Query: "subclassing BaseModel"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Hits)
	assert.Equal(t, "pydantic", out.Hits[0].SourceSite)
	assert.Contains(t, out.Hits[0].Snippet, "BaseModel")

	_, out, err = s.DocsSearch(context.Background(), nil, mcp.DocsSearchInput{Query: "run_sync stream", Site: "pydantic_ai"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Hits)
	assert.Equal(t, "Running Agents", out.Hits[0].Title)

	_, _, err = s.DocsSearch(context.Background(), nil, mcp.DocsSearchInput{Query: "!"})
	require.Error(t, err)
}

func TestServer_DocsGet(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	t.Run("html page as markdown", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsGet(context.Background(), nil, mcp.DocsGetInput{URL: "local://pydantic/concepts/models"})
		require.NoError(t, err)
		assert.Equal(t, "pydantic", out.Site)
		assert.Equal(t, "concepts/models", out.Page)
		assert.Contains(t, out.Content, "# Models")
		assert.Contains(t, out.Content, "subclassing BaseModel")
		assert.Contains(t, out.HTML, "<h1")
		assert.False(t, out.Truncated)
	})

	t.Run("markdown page verbatim", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsGet(context.Background(), nil, mcp.DocsGetInput{URL: "https://ai.pydantic.dev/agents/"})
		require.NoError(t, err)
		assert.Contains(t, out.Content, "## Running Agents")
		assert.Empty(t, out.HTML)
	})

	t.Run("max_chars truncates", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsGet(context.Background(), nil, mcp.DocsGetInput{URL: "local://pydantic/concepts/models", MaxChars: 1})
		require.NoError(t, err)
		assert.True(t, out.Truncated)
		assert.LessOrEqual(t, len(out.Content), 200)
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()
		_, _, err := s.DocsGet(context.Background(), nil, mcp.DocsGetInput{URL: "local://pydantic/nope"})
		require.Error(t, err)
	})
}

func TestServer_DocsSection(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	t.Run("anchor from argument", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsSection(context.Background(), nil, mcp.DocsSectionInput{URL: "local://pydantic/concepts/models", Anchor: "basic-usage"})
		require.NoError(t, err)
		assert.Contains(t, out.Text, "keyword arguments")
		assert.Equal(t, "basic-usage", out.Anchor)
	})

	t.Run("anchor from URL fragment", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsSection(context.Background(), nil, mcp.DocsSectionInput{URL: "https://ai.pydantic.dev/agents#running-agents"})
		require.NoError(t, err)
		assert.Contains(t, out.Text, "run_sync")
	})

	t.Run("missing anchor on page", func(t *testing.T) {
		t.Parallel()
		_, out, err := s.DocsSection(context.Background(), nil, mcp.DocsSectionInput{URL: "local://pydantic/concepts/models", Anchor: "nope"})
		require.NoError(t, err)
		assert.Empty(t, out.Text)
	})

	t.Run("no anchor at all", func(t *testing.T) {
		t.Parallel()
		_, _, err := s.DocsSection(context.Background(), nil, mcp.DocsSectionInput{URL: "local://pydantic/concepts/models"})
		require.Error(t, err)
	})
}

func TestServer_DocsAPI(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	_, out, err := s.DocsAPI(context.Background(), nil, mcp.DocsAPIInput{Symbol: "pydantic.BaseModel"})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "API reference for BaseModel")
	assert.Equal(t, "local://pydantic/api/base_model", out.URL)

	_, _, err = s.DocsAPI(context.Background(), nil, mcp.DocsAPIInput{Symbol: "NotAThing"})
	require.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	_, ping, err := s.HealthPing(context.Background(), nil, mcp.HealthPingInput{})
	require.NoError(t, err)
	assert.Equal(t, "ok", ping.Status)

	_, status, err := s.DocsStatus(context.Background(), nil, mcp.DocsStatusInput{})
	require.NoError(t, err)
	require.Len(t, status.Sites, 2)
	assert.Equal(t, 2, status.Sites[0].Pages)
	assert.Positive(t, status.Sites[0].Records)
	assert.Positive(t, status.Sites[0].IndexBytes)
	assert.Equal(t, status.TotalRecords, status.Sites[0].Records+status.Sites[1].Records)

	_, validate, err := s.HealthValidate(context.Background(), nil, mcp.HealthValidateInput{})
	require.NoError(t, err)
	assert.True(t, validate.Healthy)
	for _, check := range validate.Checks {
		assert.True(t, check.OK, check.Name)
	}
}

func TestLookupSymbol(t *testing.T) {
	t.Parallel()
	page, ok := mcp.LookupSymbol("TypeAdapter")
	require.True(t, ok)
	assert.Equal(t, "api/type_adapter", page)

	_, ok = mcp.LookupSymbol("NotAThing")
	assert.False(t, ok)
	assert.NotEmpty(t, mcp.KnownSymbols())
}
