// Package engine ranks catalog items against a free-text query.
//
// Everything here is pure: inputs are only read, results are freshly
// allocated, and every call is safe to run concurrently with any other.
package engine

import (
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/text"
)

// Scoring weights. Literal matches must always outweigh fuzzy token hits.
const (
	emptyQueryScore  = 1.0
	substringWeight  = 10.0
	namePrefixWeight = 4.0
	exactTokenWeight = 3.0
	fuzzyTokenWeight = 1.5

	// stemPrefixLen is the shared leading run that makes two tokens near
	// misses of each other ("hoody"/"hoodie", "alumnus"/"alumni").
	stemPrefixLen = 4
)

// query is a pre-normalized search query, built once per evaluation.
type query struct {
	normalized string
	tokens     []string
}

func newQuery(raw string) query {
	n := text.Normalize(raw)
	return query{normalized: n, tokens: text.Tokenize(n)}
}

func (q query) blank() bool { return q.normalized == "" }

// Score returns the relevance of p for rawQuery (always >= 0).
func Score(p *product.Product, rawQuery string) float64 {
	return newQuery(rawQuery).score(p)
}

func (q query) score(p *product.Product) float64 {
	if q.blank() {
		return emptyQueryScore
	}

	haystack := text.Join(p.Name(), p.Subtitle(), p.Category(), p.Code())
	if haystack == "" {
		return 0
	}

	var score float64
	if strings.Contains(haystack, q.normalized) {
		score += substringWeight
	}
	if strings.HasPrefix(text.Normalize(p.Name()), q.normalized) {
		score += namePrefixWeight
	}

	hayTokens := text.Tokenize(haystack)
	haySet := make(map[string]struct{}, len(hayTokens))
	for _, t := range hayTokens {
		haySet[t] = struct{}{}
	}

	for _, token := range q.tokens {
		if _, ok := haySet[token]; ok {
			score += exactTokenWeight
			continue
		}
		for _, h := range hayTokens {
			if fuzzyMatch(h, token) {
				score += fuzzyTokenWeight
				break
			}
		}
	}

	return score
}

// fuzzyMatch reports a partial match between two normalized tokens: one is a
// prefix or substring of the other, or they share a stem of stemPrefixLen.
func fuzzyMatch(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return commonPrefixLen(a, b) >= stemPrefixLen
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
