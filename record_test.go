package docdex_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
)

func TestDocumentRecord_Validate(t *testing.T) {
	t.Parallel()

	valid := docdex.DocumentRecord{
		Title:      "Validators",
		Text:       "Validators run after the model is constructed.",
		Page:       "concepts/validators.html",
		SourceSite: "pydantic",
	}

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()

		r := valid
		assert.NoError(t, r.Validate())
	})

	t.Run("requires text", func(t *testing.T) {
		t.Parallel()

		r := valid
		r.Text = "  "
		err := r.Validate()
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("requires page", func(t *testing.T) {
		t.Parallel()

		r := valid
		r.Page = ""
		assert.Error(t, r.Validate())
	})

	t.Run("requires source site", func(t *testing.T) {
		t.Parallel()

		r := valid
		r.SourceSite = ""
		assert.Error(t, r.Validate())
	})
}

func TestDocumentRecord_IndexedText(t *testing.T) {
	t.Parallel()

	r := docdex.DocumentRecord{Title: "Settings", Text: "Loads configuration."}
	assert.Equal(t, "Settings\n\nLoads configuration.", r.IndexedText())

	r.Title = ""
	assert.Equal(t, "Loads configuration.", r.IndexedText())
}

func TestSiteConfig(t *testing.T) {
	t.Parallel()

	site := docdex.SiteConfig{
		ID:      "pydantic_ai",
		Root:    "/docs/pydantic_ai",
		BaseURL: "https://ai.pydantic.dev/",
		Kind:    docdex.SourceHTML,
	}

	t.Run("validates", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, site.Validate())

		bad := site
		bad.Kind = "pdf"
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(bad.Validate()))
	})

	t.Run("canonical URL", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			"https://ai.pydantic.dev/agents/index.html#tools",
			site.CanonicalURL("agents/index.html", "tools"))
		assert.Equal(t,
			"https://ai.pydantic.dev/agents/index.html",
			site.CanonicalURL("agents/index.html", ""))
	})

	t.Run("display base", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "local://pydantic-ai/", site.DisplayBase())
	})
}
