package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/docdex/docdex/cmd/docdex"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// testMain returns a Main wired to temp directories holding a small doc
// tree for each site.
func testMain(t *testing.T) *main.Main {
	t.Helper()

	docsDir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(docsDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("pydantic/concepts/models/index.html", `<html><head><title>Models</title></head><body><main><h1 id="models">Models</h1><p>Define models by subclassing BaseModel.</p><h2 id="basic-usage">Basic usage</h2><p>Instantiate with keyword arguments.</p></main></body></html>`)
	write("pydantic_ai/agents/index.md", "# Agents\n\nAgents wrap a model and tools.\n\n## Running Agents\n\nRun them with run_sync.\n")

	m := main.NewMain()
	m.DocsDir = docsDir
	m.DataDir = t.TempDir()
	return m
}

func TestCmdIndexAndSearch(t *testing.T) {
	t.Parallel()

	m := testMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	require.NoError(t, m.Run(testContext(), []string{"index"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "pydantic: indexed")
	assert.Contains(t, stdout.String(), "pydantic_ai: indexed")

	stdout.Reset()
	require.NoError(t, m.Run(testContext(), []string{"search", "subclassing", "BaseModel"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "Models")
	assert.Contains(t, stdout.String(), "https://docs.pydantic.dev/latest/concepts/models")

	stdout.Reset()
	require.NoError(t, m.Run(testContext(), []string{"search", "run_sync", "--site", "pydantic_ai"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "Running Agents")

	stdout.Reset()
	require.NoError(t, m.Run(testContext(), []string{"status"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "pydantic:")
	assert.Contains(t, stdout.String(), "records")
}

func TestCmdSearchWithoutIndex(t *testing.T) {
	t.Parallel()

	m := testMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(testContext(), []string{"search", "anything"}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "docdex index")
}

func TestCmdStatusWithoutIndex(t *testing.T) {
	t.Parallel()

	m := testMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	require.NoError(t, m.Run(testContext(), []string{"status"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "index: not built")
}

func TestCmdNoArgs(t *testing.T) {
	t.Parallel()

	m := testMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(testContext(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestCmdIndexSingleSite(t *testing.T) {
	t.Parallel()

	m := testMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	require.NoError(t, m.Run(testContext(), []string{"index", "--site", "pydantic_ai"}, stdout, stderr))
	assert.Contains(t, stdout.String(), "pydantic_ai: indexed")
	assert.NotContains(t, stdout.String(), "pydantic: indexed")
}