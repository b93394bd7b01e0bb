package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex"
)

// toolError flattens a coded error for the protocol boundary. Non-domain
// errors surface as the generic internal-error message, never raw detail.
func toolError(err error) error {
	return errors.New(docdex.ErrorMessage(err))
}

type DocsStatusInput struct{}

type SiteStatus struct {
	Site       string `json:"site"`
	Root       string `json:"root"`
	Pages      int    `json:"pages"`
	Records    int    `json:"records"`
	IndexBytes int64  `json:"index_bytes"`
}

type DocsStatusOutput struct {
	DataDir      string       `json:"data_dir"`
	TotalRecords int          `json:"total_records"`
	Sites        []SiteStatus `json:"sites"`
}

func (s *Server) DocsStatus(ctx context.Context, req *mcp.CallToolRequest, in DocsStatusInput) (*mcp.CallToolResult, DocsStatusOutput, error) {
	out := DocsStatusOutput{
		DataDir:      s.DataDir,
		TotalRecords: s.Engine.RecordCount(""),
	}
	for _, site := range s.Engine.Sites() {
		status := SiteStatus{
			Site:    site.ID,
			Root:    site.Root,
			Records: s.Engine.RecordCount(site.ID),
		}
		if n, err := s.Pages.CountPages(site.ID); err == nil {
			status.Pages = n
		}
		status.IndexBytes = artifactBytes(s.DataDir, s.Records.Path(site.ID), site.ID)
		out.Sites = append(out.Sites, status)
	}
	return nil, out, nil
}

// artifactBytes sums the on-disk sizes of a site's index artifacts.
func artifactBytes(dataDir, recordsPath, siteID string) int64 {
	var total int64
	paths := []string{
		filepath.Join(dataDir, siteID+"_bm25.gob"),
		filepath.Join(dataDir, siteID+"_records.gob"),
		recordsPath,
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}
	return total
}

type HealthPingInput struct{}

type HealthPingOutput struct {
	Status  string `json:"status"`
	Server  string `json:"server"`
	Version string `json:"version"`
}

func (s *Server) HealthPing(ctx context.Context, req *mcp.CallToolRequest, in HealthPingInput) (*mcp.CallToolResult, HealthPingOutput, error) {
	return nil, HealthPingOutput{Status: "ok", Server: s.Name, Version: s.Version}, nil
}

type HealthValidateInput struct{}

type HealthCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type HealthValidateOutput struct {
	Healthy bool          `json:"healthy"`
	Checks  []HealthCheck `json:"checks"`
}

// HealthValidate cross-checks the configured doc trees against the loaded
// index: roots must exist and hold pages, the stored corpus must be
// readable, and its size must match what the engine serves.
func (s *Server) HealthValidate(ctx context.Context, req *mcp.CallToolRequest, in HealthValidateInput) (*mcp.CallToolResult, HealthValidateOutput, error) {
	out := HealthValidateOutput{Healthy: true}
	add := func(name string, ok bool, detail string) {
		if !ok {
			out.Healthy = false
		}
		out.Checks = append(out.Checks, HealthCheck{Name: name, OK: ok, Detail: detail})
	}

	for _, site := range s.Engine.Sites() {
		pages, err := s.Pages.CountPages(site.ID)
		switch {
		case err != nil:
			add(site.ID+"/pages", false, docdex.ErrorMessage(err))
		case pages == 0:
			add(site.ID+"/pages", false, fmt.Sprintf("no pages under %s", site.Root))
		default:
			add(site.ID+"/pages", true, fmt.Sprintf("%d pages", pages))
		}

		records, err := s.Records.ReadRecords(site.ID)
		if err != nil {
			add(site.ID+"/records", false, docdex.ErrorMessage(err))
			continue
		}
		add(site.ID+"/records", true, fmt.Sprintf("%d records", len(records)))

		indexed := s.Engine.RecordCount(site.ID)
		add(site.ID+"/index", indexed == len(records),
			fmt.Sprintf("%d indexed, %d stored", indexed, len(records)))
	}
	return nil, out, nil
}
