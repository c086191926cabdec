package engine

import (
	"sort"

	"github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/tier"
)

// Outcome is a ranked result list plus the fallback tier that produced it.
type Outcome struct {
	Items []product.Product
	Tier  tier.Tier
}

// Search ranks catalog against query within category and never returns an
// empty list for a non-empty catalog. category "" or request.AllCategories
// disables scoping.
func Search(catalog []product.Product, rawQuery, category string) []product.Product {
	return Evaluate(catalog, rawQuery, category).Items
}

// Evaluate runs the fallback policy:
//  1. scoped: rank the category-filtered catalog;
//  2. widened: if nothing matched and the query is not blank, rank the whole catalog;
//  3. unfiltered: otherwise the whole catalog by descending rating.
func Evaluate(catalog []product.Product, rawQuery, category string) Outcome {
	catalog = uniqueByID(catalog)
	q := newQuery(rawQuery)

	pool := catalog
	if !request.IsAllCategories(category) {
		pool = filterCategory(catalog, category)
	}
	if ranked := q.rank(pool); len(ranked) > 0 {
		return Outcome{Items: ranked, Tier: tier.Scoped}
	}

	if !q.blank() {
		if ranked := q.rank(catalog); len(ranked) > 0 {
			return Outcome{Items: ranked, Tier: tier.Widened}
		}
	}

	return Outcome{Items: ByRating(catalog), Tier: tier.Unfiltered}
}

// ByRating returns a copy of items sorted by descending rating, stable on ties.
func ByRating(items []product.Product) []product.Product {
	out := make([]product.Product, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating() > out[j].Rating()
	})
	return out
}

func filterCategory(items []product.Product, category string) []product.Product {
	var out []product.Product
	for i := range items {
		if items[i].Category() == category {
			out = append(out, items[i])
		}
	}
	return out
}

// uniqueByID drops repeated identifiers, keeping the first occurrence.
func uniqueByID(items []product.Product) []product.Product {
	seen := make(map[string]struct{}, len(items))
	out := make([]product.Product, 0, len(items))
	for i := range items {
		id := items[i].ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, items[i])
	}
	return out
}
