// Package docdex provides an offline, locally-indexed documentation search
// service. It ingests raw documentation pages (HTML or Markdown) from cloned
// site trees, extracts clean prose per section, chunks it to a token budget,
// indexes it with BM25 for lexical retrieval, and serves search and
// page-fetch operations over an MCP tool interface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, tiktoken/).
package docdex
