package sdk

import (
	"github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/engine"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/tier"
)

// AllCategories disables category scoping, as does "".
const AllCategories = request.AllCategories

// Tier names the fallback stage that produced a result list.
type Tier = tier.Tier

// Fallback tiers.
const (
	TierScoped     = tier.Scoped
	TierWidened    = tier.Widened
	TierUnfiltered = tier.Unfiltered
)

// Item is a searchable catalog entry. Only ID, Name, Subtitle, Category,
// Code and Rating take part in ranking; Data is carried through untouched.
type Item struct {
	ID       string
	Name     string
	Subtitle string
	Category string
	Code     string
	Rating   float64
	Data     any
}

// Result is a ranked list plus the tier that produced it.
type Result struct {
	Items []Item
	Tier  Tier
}

// Search ranks items against query within category. Items sharing an ID are
// collapsed to the first occurrence.
func Search(items []Item, query, category string) []Item {
	return Evaluate(items, query, category).Items
}

// Evaluate is Search that also reports the fallback tier.
func Evaluate(items []Item, query, category string) Result {
	byID := make(map[string]Item, len(items))
	catalog := make([]product.Product, 0, len(items))
	for _, it := range items {
		if _, dup := byID[it.ID]; dup {
			continue
		}
		byID[it.ID] = it
		catalog = append(catalog, product.Reconstruct(it.ID, product.Attributes{
			Name:     it.Name,
			Subtitle: it.Subtitle,
			Category: it.Category,
			Code:     it.Code,
			Rating:   it.Rating,
		}, 0))
	}

	out := engine.Evaluate(catalog, query, category)
	res := Result{Items: make([]Item, len(out.Items)), Tier: out.Tier}
	for i := range out.Items {
		res.Items[i] = byID[out.Items[i].ID()]
	}
	return res
}

// Score returns the relevance of it for query (0 means no match).
func Score(it Item, query string) float64 {
	p := product.Reconstruct(it.ID, product.Attributes{
		Name:     it.Name,
		Subtitle: it.Subtitle,
		Category: it.Category,
		Code:     it.Code,
	}, 0)
	return engine.Score(&p, query)
}
