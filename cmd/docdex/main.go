package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	"github.com/docdex/docdex/ingest"
	"github.com/docdex/docdex/tiktoken"
	"github.com/docdex/docdex/trafilatura"
)

const version = "0.1.0"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Index artifact directory. Set before calling Run().
	DataDir string

	// Root directory holding one doc tree per site. Set before calling
	// Run().
	DocsDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir: defaultDataDir(),
		DocsDir: defaultDocsDir(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		DataDir: m.DataDir,
		Sites:   m.sites(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Description("Offline search over the Pydantic and Pydantic AI documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logging goes to stderr: stdout carries command output, and under
	// "serve" it carries the MCP protocol.
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Parsers = map[docdex.SourceKind]ingest.PageParser{
		docdex.SourceHTML: &ingest.HTMLParser{
			Extractor: &docdex.FallbackExtractor{
				Primary:  goquery.NewExtractor(),
				Fallback: trafilatura.NewExtractor(),
			},
			Segmenter: goquery.NewSegmenter(),
			Converter: htmltomarkdown.NewConverter(),
		},
		docdex.SourceMarkdown: ingest.MarkdownParser{},
	}
	deps.Records = &fs.RecordStore{Dir: m.DataDir}
	deps.Pages = &fs.PageStore{Sites: deps.Sites}

	// The token counter may fetch encoding data on first use; only the
	// index command pays that cost.
	if args[0] == "index" {
		pipeline := &ingest.Pipeline{
			Parsers:   deps.Parsers,
			Counter:   newTokenCounter(deps.Logger),
			MaxTokens: cli.Index.MaxTokens,
			Logger:    deps.Logger,
		}
		if cli.Index.Snapshots {
			pipeline.SnapshotDir = filepath.Join(m.DataDir, "snapshots")
		}
		deps.Builder = &ingest.Builder{
			Pipeline: pipeline,
			Logger:   deps.Logger,
			Workers:  cli.Index.Workers,
		}
	}

	return kongCtx.Run(deps)
}

// newTokenCounter selects the chunking token counter once at startup: the
// subword tokenizer when its encoding data is available, the character
// estimator otherwise.
func newTokenCounter(logger *slog.Logger) docdex.TokenCounter {
	counter, err := tiktoken.NewTokenCounter()
	if err != nil {
		logger.Warn("subword tokenizer unavailable, using character estimate",
			slog.String("error", docdex.ErrorMessage(err)))
		return docdex.TokenEstimator{}
	}
	return counter
}

// sites returns the fixed site configurations rooted in the docs
// directory.
func (m *Main) sites() []docdex.SiteConfig {
	return []docdex.SiteConfig{
		{
			ID:      "pydantic",
			Root:    filepath.Join(m.DocsDir, "pydantic"),
			BaseURL: "https://docs.pydantic.dev/latest",
			Kind:    docdex.SourceHTML,
		},
		{
			ID:      "pydantic_ai",
			Root:    filepath.Join(m.DocsDir, "pydantic_ai"),
			BaseURL: "https://ai.pydantic.dev",
			Kind:    docdex.SourceMarkdown,
		},
	}
}

func defaultDataDir() string {
	if path := os.Getenv("DOCDEX_DATA_DIR"); path != "" {
		return path
	}
	return filepath.Join(baseDir(), "data")
}

func defaultDocsDir() string {
	if path := os.Getenv("DOCDEX_DOCS_DIR"); path != "" {
		return path
	}
	return filepath.Join(baseDir(), "docs")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docdex"
	}
	return filepath.Join(home, ".docdex")
}
