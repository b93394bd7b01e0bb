package mock

import "github.com/docdex/docdex"

var _ docdex.Segmenter = (*Segmenter)(nil)

type Segmenter struct {
	SegmentFunc func(html string) ([]docdex.Segment, error)
}

func (s *Segmenter) Segment(html string) ([]docdex.Segment, error) {
	return s.SegmentFunc(html)
}
