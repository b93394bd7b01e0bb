package mock

import "github.com/docdex/docdex"

var _ docdex.Extractor = (*Extractor)(nil)

type Extractor struct {
	ExtractFunc func(rawHTML string) (*docdex.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	return e.ExtractFunc(rawHTML)
}
