package engine

import (
	"sort"

	"github.com/dbhs-alumni/merchstore/internal/domain/product"
)

type scored struct {
	item  product.Product
	score float64
}

// Rank scores every item, drops non-matches (score <= 0) and sorts by
// descending score. Ties keep catalog order.
func Rank(items []product.Product, rawQuery string) []product.Product {
	return newQuery(rawQuery).rank(items)
}

func (q query) rank(items []product.Product) []product.Product {
	candidates := make([]scored, 0, len(items))
	for i := range items {
		if s := q.score(&items[i]); s > 0 {
			candidates = append(candidates, scored{item: items[i], score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]product.Product, len(candidates))
	for i, c := range candidates {
		out[i] = c.item
	}
	return out
}
