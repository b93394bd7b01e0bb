package docdex

import "strings"

// ChunkText splits a section body into chunks bounded by maxTokens,
// splitting only at blank-line paragraph boundaries. Paragraphs are
// accumulated greedily; when adding the next paragraph would exceed the
// budget the accumulated chunk is emitted and the paragraph starts a new
// one. A single paragraph over the budget is emitted whole: the budget is a
// soft target, not a hard limit.
//
// All returned chunks are non-empty and in input order. Rejoining them with
// "\n\n" reconstructs the body modulo surrounding whitespace.
func ChunkText(body string, maxTokens int, counter TokenCounter) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	if counter.CountTokens(body) <= maxTokens {
		return []string{body}
	}

	var (
		out   []string
		acc   []string
		count int
	)
	for _, para := range strings.Split(body, "\n\n") {
		t := counter.CountTokens(para)
		if len(acc) > 0 && count+t > maxTokens {
			out = appendChunk(out, acc)
			acc, count = nil, 0
		}
		acc = append(acc, para)
		count += t
	}
	out = appendChunk(out, acc)
	return out
}

func appendChunk(out []string, acc []string) []string {
	chunk := strings.TrimSpace(strings.Join(acc, "\n\n"))
	if chunk == "" {
		return out
	}
	return append(out, chunk)
}
