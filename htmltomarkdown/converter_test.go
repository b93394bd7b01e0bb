package htmltomarkdown_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements docdex.Converter at compile time.
var _ docdex.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs and headings", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Validators</h2><p>Run after construction.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Validators")
		assert.Contains(t, md, "Run after construction.")
	})

	t.Run("converts lists to plain lines", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>First</li><li>Second</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "First")
		assert.Contains(t, md, "Second")
	})

	t.Run("empty input yields empty markdown", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
