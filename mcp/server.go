// Package mcp exposes the documentation index over the Model Context
// Protocol on stdio. Handlers are thin adapters: argument bounding and
// response shaping only, with all retrieval logic behind the injected
// services.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/ingest"
	"github.com/docdex/docdex/search"
)

// Server serves the documentation tools over stdio. All fields must be set
// before Run; the server holds no mutable state of its own.
type Server struct {
	Name    string
	Version string

	Engine  *search.Engine
	Pages   *fs.PageStore
	Records *fs.RecordStore
	Parsers map[docdex.SourceKind]ingest.PageParser

	// DataDir holds the index artifacts, reported by docs_status.
	DataDir string

	Logger *slog.Logger
}

// Run registers every tool and serves on stdio until the context is
// cancelled or the client disconnects. Stdout carries the protocol; all
// logging must go to stderr.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: s.Name, Version: s.Version}, nil)
	s.register(srv)

	s.Logger.Info("mcp server ready",
		slog.String("name", s.Name),
		slog.String("version", s.Version),
		slog.Int("records", s.Engine.RecordCount("")),
	)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "mcp server: %v", err)
	}
	return nil
}

func (s *Server) register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_search",
		Description: "Search the local Pydantic and Pydantic AI documentation. Returns ranked hits with snippets and deep-link URLs.",
	}, s.DocsSearch)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_get",
		Description: "Fetch a documentation page as Markdown by URL or page path. Accepts result URLs from docs_search.",
	}, s.DocsGet)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_section",
		Description: "Fetch one section of a documentation page by anchor. Accepts URLs with #fragments.",
	}, s.DocsSection)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_api",
		Description: "Jump to the API reference page for a known Pydantic symbol (e.g. BaseModel, TypeAdapter, field_validator).",
	}, s.DocsAPI)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_status",
		Description: "Report corpus and index status per documentation site.",
	}, s.DocsStatus)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "health_ping",
		Description: "Liveness check.",
	}, s.HealthPing)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "health_validate",
		Description: "Validate that the configured doc trees and index artifacts are consistent.",
	}, s.HealthValidate)
}
