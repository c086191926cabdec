package search

import (
	"sort"
	"strings"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
)

// Sort returns a copy of items in the requested order. Every mode is stable,
// so ties keep the engine's order. relevance keeps the engine's order as is.
func Sort(items []domprod.Product, mode request.Sort) []domprod.Product {
	out := make([]domprod.Product, len(items))
	copy(out, items)

	var less func(a, b *domprod.Product) bool
	switch mode {
	case request.SortNew:
		less = func(a, b *domprod.Product) bool { return a.CreatedAt() > b.CreatedAt() }
	case request.SortTopRated:
		less = func(a, b *domprod.Product) bool { return a.Rating() > b.Rating() }
	case request.SortPriceLow:
		less = func(a, b *domprod.Product) bool { return a.Price() < b.Price() }
	case request.SortPriceHigh:
		less = func(a, b *domprod.Product) bool { return a.Price() > b.Price() }
	case request.SortName:
		less = func(a, b *domprod.Product) bool {
			return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}
