// Package tiktoken counts tokens with the cl100k_base subword encoding,
// matching the scheme the corpora were originally chunked with.
package tiktoken

import (
	"github.com/docdex/docdex"
	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the fixed subword encoding used for chunk budgeting.
const encodingName = "cl100k_base"

// Ensure TokenCounter implements docdex.TokenCounter at compile time.
var _ docdex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using the cl100k_base encoding.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter creates a new TokenCounter. Callers that cannot obtain
// the encoding (no cached BPE data) should fall back to
// docdex.TokenEstimator rather than failing the pipeline.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "tokenizer unavailable: %v", err)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(tc.enc.Encode(text, nil, nil))
}
