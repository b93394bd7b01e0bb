package mock

import "github.com/docdex/docdex"

var _ docdex.Converter = (*Converter)(nil)

type Converter struct {
	ConvertFunc func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFunc(html)
}
