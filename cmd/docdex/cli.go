package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/ingest"
	"github.com/docdex/docdex/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DataDir string
	Sites   []docdex.SiteConfig

	Parsers map[docdex.SourceKind]ingest.PageParser
	Builder *ingest.Builder
	Records *fs.RecordStore
	Pages   *fs.PageStore
}

// Engine loads the search engine from the persisted index artifacts.
func (d *Dependencies) Engine() (*search.Engine, error) {
	return search.Load(d.DataDir, d.Sites)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Index  IndexCmd  `cmd:"" help:"Build the record corpus and BM25 index from the local doc trees"`
	Search SearchCmd `cmd:"" help:"Run a one-off query against the built index"`
	Serve  ServeCmd  `cmd:"" help:"Serve the documentation tools over MCP on stdio"`
	Status StatusCmd `cmd:"" help:"Show corpus and index status per site"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Site      string `short:"s" help:"Build a single site (pydantic or pydantic_ai)"`
	Snapshots bool   `help:"Write per-page Markdown snapshots next to the index artifacts"`
	MaxTokens int    `default:"1200" help:"Target chunk size in tokens"`
	Workers   int    `short:"c" help:"Concurrent page limit (default: half the CPUs, minimum 2)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    []string `arg:"" help:"Query terms"`
	K        int      `short:"k" default:"8" help:"Maximum number of hits"`
	Site     string   `short:"s" help:"Restrict to one site"`
	Keywords []string `short:"K" name:"keyword" help:"Require keyword in title or snippet (repeatable)"`
	Heading  string   `short:"H" help:"Require this text in the hit's heading"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
