package docdex

// Segment represents one titled section of a page, keyed by the stable
// anchor of its heading. The body holds the section's inner markup so that
// per-section cleaning can run independently of page-level cleaning.
type Segment struct {
	// Anchor is the id attribute of the section's heading. Empty for the
	// whole-page segment emitted when a page has no anchored headings.
	Anchor string

	// Title is the heading's visible text with inner whitespace collapsed
	// to single spaces. Empty for the whole-page segment.
	Title string

	// Level is the heading depth (1-3), or 0 for the whole-page segment.
	Level int

	// BodyHTML is the section's inner markup: everything after the
	// heading up to the next heading at the same or a shallower level.
	BodyHTML string
}

// Segmenter splits a cleaned document into titled sections by heading
// hierarchy.
type Segmenter interface {
	// Segment returns the page's sections in document order. Headings at
	// depth 1-3 that carry a stable id are split points; a heading
	// without an id contributes its content to the currently open
	// section. A page with no anchored headings yields exactly one
	// segment with Anchor "", Title "", Level 0 and the whole document
	// as body.
	Segment(html string) ([]Segment, error)
}
