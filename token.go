package docdex

// DefaultMaxTokens is the target chunk size for the token-aware chunker.
const DefaultMaxTokens = 1200

// TokenCounter counts tokens in text under a fixed subword tokenization
// scheme. The same counter must be used for a whole corpus build so that
// chunk budgets are comparable across pages.
type TokenCounter interface {
	CountTokens(text string) int
}

// estimateDivisor approximates tokens from characters when no subword
// tokenizer is available (roughly four characters per token for English
// prose).
const estimateDivisor = 4

// TokenEstimator approximates token counts by character length. It is the
// degraded-mode TokenCounter used when the subword tokenizer cannot be
// initialized; the budget becomes a soft target rather than failing the
// pipeline.
type TokenEstimator struct{}

// Ensure TokenEstimator implements TokenCounter at compile time.
var _ TokenCounter = (*TokenEstimator)(nil)

// CountTokens returns len(text)/4, with a minimum of 1 for non-empty text.
func (TokenEstimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / estimateDivisor
	if n == 0 {
		n = 1
	}
	return n
}
