package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex"
)

// Builder runs the pipeline over every page of a site with bounded
// parallelism. Record order follows the sorted page order, so repeated
// builds over the same tree produce identical corpora.
type Builder struct {
	Pipeline *Pipeline
	Logger   *slog.Logger

	// Workers bounds the page-level fan-out. Zero means max(2, NumCPU/2).
	Workers int
}

// BuildSite discovers and processes every page under the site root. A page
// that fails to parse is logged and skipped; a site with no pages at all is
// a warning and yields no records.
func (b *Builder) BuildSite(ctx context.Context, site docdex.SiteConfig) ([]docdex.DocumentRecord, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	paths, err := discoverPages(site)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		b.Logger.Warn("no pages found for site", slog.String("site", site.ID), slog.String("root", site.Root))
		return nil, nil
	}

	results := make([][]docdex.DocumentRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := b.Pipeline.ExtractPage(site, path)
			if err != nil {
				b.Logger.Warn("skipping page",
					slog.String("site", site.ID),
					slog.String("page", path),
					slog.String("error", docdex.ErrorMessage(err)),
				)
				return nil
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []docdex.DocumentRecord
	for _, records := range results {
		all = append(all, records...)
	}
	b.Logger.Info("site built",
		slog.String("site", site.ID),
		slog.Int("pages", len(paths)),
		slog.Int("records", len(all)),
	)
	return all, nil
}

func (b *Builder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	n := runtime.NumCPU() / 2
	if n < 2 {
		n = 2
	}
	return n
}

// discoverPages walks the site root collecting page files for the site's
// source kind. WalkDir visits entries in lexical order, which fixes the
// corpus order. A site root that does not exist yields no pages, so the
// caller can warn and move on like it does for an empty tree.
func discoverPages(site docdex.SiteConfig) ([]string, error) {
	exts := map[docdex.SourceKind][]string{
		docdex.SourceHTML:     {".html", ".htm"},
		docdex.SourceMarkdown: {".md"},
	}[site.Kind]

	var paths []string
	err := filepath.WalkDir(site.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == site.Root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "walk site root %s: %v", site.Root, err)
	}
	return paths, nil
}
