package docdex

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, when one could be determined.
	Title string

	// ContentHTML is the main content as clean HTML. Boilerplate
	// (nav, header, footer, sidebar, scripts, styles) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Malformed markup must not fail the extraction; implementations
	// fall back to the cleaned full document when no main-content
	// container can be identified.
	Extract(html string) (*ExtractResult, error)
}

// FallbackExtractor is a fixed extraction strategy resolved once at startup:
// it runs Primary and switches to Fallback only when Primary errors or finds
// no content at all.
type FallbackExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

// Ensure FallbackExtractor implements Extractor at compile time.
var _ Extractor = (*FallbackExtractor)(nil)

// Extract runs the primary extractor, deferring to the fallback when the
// primary produces nothing usable.
func (e *FallbackExtractor) Extract(html string) (*ExtractResult, error) {
	result, err := e.Primary.Extract(html)
	if err == nil && result != nil && result.ContentHTML != "" {
		return result, nil
	}
	if e.Fallback == nil {
		return result, err
	}
	return e.Fallback.Extract(html)
}
