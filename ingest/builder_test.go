package ingest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/ingest"
)

func TestBuilder_BuildSite(t *testing.T) {
	t.Parallel()

	t.Run("processes pages in sorted order", func(t *testing.T) {
		t.Parallel()
		site := testSite(t)
		writePage(t, site.Root, "tools/index.md", "## Function Tools\n\ntools text\n")
		writePage(t, site.Root, "agents/index.md", "## Agents\n\nagents text\n")
		writePage(t, site.Root, "notes.txt", "not a page")

		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger(), Workers: 2}
		records, err := b.BuildSite(context.Background(), site)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "agents", records[0].Page)
		assert.Equal(t, "tools", records[1].Page)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()
		site := testSite(t)
		writePage(t, site.Root, "a.md", "## A\n\nalpha\n")
		writePage(t, site.Root, "b.md", "## B\n\nbeta\n")
		writePage(t, site.Root, "c.md", "## C\n\ngamma\n")

		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger()}
		first, err := b.BuildSite(context.Background(), site)
		require.NoError(t, err)
		second, err := b.BuildSite(context.Background(), site)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty site yields no records and no error", func(t *testing.T) {
		t.Parallel()
		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger()}
		records, err := b.BuildSite(context.Background(), testSite(t))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing site root yields no records and no error", func(t *testing.T) {
		t.Parallel()
		site := testSite(t)
		site.Root = filepath.Join(site.Root, "missing")

		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger()}
		records, err := b.BuildSite(context.Background(), site)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("invalid site config", func(t *testing.T) {
		t.Parallel()
		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger()}
		_, err := b.BuildSite(context.Background(), docdex.SiteConfig{ID: "x"})
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("cancelled context stops the build", func(t *testing.T) {
		t.Parallel()
		site := testSite(t)
		writePage(t, site.Root, "a.md", "## A\n\nalpha\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := &ingest.Builder{Pipeline: markdownPipeline(), Logger: discardLogger()}
		_, err := b.BuildSite(ctx, site)
		require.Error(t, err)
	})
}
