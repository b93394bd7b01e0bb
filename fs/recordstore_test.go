package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
)

func testRecords() []docdex.DocumentRecord {
	return []docdex.DocumentRecord{
		{Title: "Models", Anchor: "basic-usage", HeadingLevel: 2, Text: "Define models by subclassing BaseModel.", URL: "https://docs.pydantic.dev/latest/concepts/models#basic-usage", Page: "concepts/models", SourceSite: "pydantic"},
		{Title: "Agents", Text: "Agents wrap a model and its tools.", URL: "https://ai.pydantic.dev/agents", Page: "agents", SourceSite: "pydantic_ai"},
	}
}

func TestRecordStore(t *testing.T) {
	t.Parallel()

	t.Run("write then read round trips in order", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		records := testRecords()
		require.NoError(t, store.WriteRecords("pydantic", records))

		got, err := store.ReadRecords("pydantic")
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("write replaces the previous corpus", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		require.NoError(t, store.WriteRecords("pydantic", testRecords()))
		require.NoError(t, store.WriteRecords("pydantic", testRecords()[:1]))

		got, err := store.ReadRecords("pydantic")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing file is unavailable", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		_, err := store.ReadRecords("pydantic")
		require.Error(t, err)
		assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
	})

	t.Run("invalid record is rejected before writing", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		err := store.WriteRecords("pydantic", []docdex.DocumentRecord{{Title: "no text"}})
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
		assert.NoFileExists(t, store.Path("pydantic"))
	})

	t.Run("malformed line names its position", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		require.NoError(t, store.WriteRecords("pydantic", testRecords()))

		data, err := os.ReadFile(store.Path("pydantic"))
		require.NoError(t, err)
		lines := strings.SplitN(string(data), "\n", 2)
		require.NoError(t, os.WriteFile(store.Path("pydantic"), []byte(lines[0]+"\n{broken\n"), 0o644))

		_, err = store.ReadRecords("pydantic")
		require.Error(t, err)
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(err))
		assert.Contains(t, docdex.ErrorMessage(err), "line 2")
	})

	t.Run("record files are per site", func(t *testing.T) {
		t.Parallel()
		store := &fs.RecordStore{Dir: t.TempDir()}
		require.NoError(t, store.WriteRecords("pydantic", testRecords()[:1]))
		require.NoError(t, store.WriteRecords("pydantic_ai", testRecords()[1:]))

		assert.Equal(t, filepath.Join(store.Dir, "pydantic_records.jsonl"), store.Path("pydantic"))
		a, err := store.ReadRecords("pydantic")
		require.NoError(t, err)
		b, err := store.ReadRecords("pydantic_ai")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
