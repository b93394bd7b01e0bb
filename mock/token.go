package mock

import "github.com/docdex/docdex"

var _ docdex.TokenCounter = (*TokenCounter)(nil)

type TokenCounter struct {
	CountTokensFunc func(text string) int
}

func (c *TokenCounter) CountTokens(text string) int {
	return c.CountTokensFunc(text)
}
