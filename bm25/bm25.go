// Package bm25 implements the lexical retrieval model: a shared tokenizer
// and a classic BM25 (Okapi) index over chunk texts, persisted together
// with its source records as a matched pair of blobs.
package bm25

import (
	"math"
	"regexp"
	"strings"
)

// BM25 parameters at the conventional defaults. K1 controls term-frequency
// saturation, B the document-length penalty.
const (
	K1 = 1.5
	B  = 0.75
)

// nonTokenRE matches every character outside the token alphabet. The
// alphabet keeps '#', '_' and '-' so markdown heading markers and
// identifiers like source_site or pydantic-ai survive tokenization.
var nonTokenRE = regexp.MustCompile(`[^a-z0-9_#\-\s]`)

// Tokenize lowercases, maps characters outside [a-z0-9_#-] to spaces,
// splits on whitespace and drops tokens of length <= 1.
//
// The exact same function runs at index-build time and query time; any
// divergence breaks retrieval.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	s = nonTokenRE.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

// Index is a read-only BM25 scoring structure built once from a corpus.
// The i-th scored document corresponds to the i-th source record; the two
// must always be persisted and loaded together.
type Index struct {
	DocFreq   map[string]int
	TermFreqs []map[string]int
	DocLens   []int
	AvgDocLen float64
}

// Build tokenizes every document text and builds the index. It is
// deterministic: the same texts always yield the same index.
func Build(texts []string) *Index {
	idx := &Index{
		DocFreq:   make(map[string]int),
		TermFreqs: make([]map[string]int, len(texts)),
		DocLens:   make([]int, len(texts)),
	}

	var totalLen int
	for i, text := range texts {
		tokens := Tokenize(text)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		idx.TermFreqs[i] = tf
		idx.DocLens[i] = len(tokens)
		totalLen += len(tokens)
		for tok := range tf {
			idx.DocFreq[tok]++
		}
	}
	if len(texts) > 0 {
		idx.AvgDocLen = float64(totalLen) / float64(len(texts))
	}
	return idx
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.TermFreqs)
}

// Scores computes a BM25 score per document for the given query tokens.
// The returned slice is positionally aligned with the indexed corpus.
// IDF uses the non-negative ln(1 + (N-df+0.5)/(df+0.5)) form.
func (idx *Index) Scores(queryTokens []string) []float64 {
	n := idx.Len()
	scores := make([]float64, n)
	if n == 0 || len(queryTokens) == 0 {
		return scores
	}

	for _, tok := range queryTokens {
		df := idx.DocFreq[tok]
		if df == 0 {
			continue
		}
		idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
		for i := 0; i < n; i++ {
			tf := float64(idx.TermFreqs[i][tok])
			if tf == 0 {
				continue
			}
			norm := 1 - B + B*float64(idx.DocLens[i])/idx.AvgDocLen
			scores[i] += idf * tf * (K1 + 1) / (tf + K1*norm)
		}
	}
	return scores
}
