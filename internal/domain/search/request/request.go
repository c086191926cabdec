package request

import (
	"fmt"
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	MaxLimit       = 500

	// AllCategories is the category selector that disables category scoping.
	AllCategories = "All Categories"
)

// Sort is the storefront ordering applied after ranking.
type Sort string

// Sort constants.
const (
	// SortRelevance keeps the engine order.
	SortRelevance Sort = "relevance"
	SortNew       Sort = "new"
	SortTopRated  Sort = "top-rated"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortName      Sort = "name"
)

// IsValid checks if the sort is one of the supported values.
func (s Sort) IsValid() bool {
	switch s {
	case SortRelevance, SortNew, SortTopRated, SortPriceLow, SortPriceHigh, SortName:
		return true
	}
	return false
}

// Request is a validated storefront search.
type Request struct {
	query    string
	category string
	sort     Sort
	limit    int
}

// New validates and normalizes search parameters.
// Defaults: category=AllCategories, sort=relevance, limit=0 (no cap).
func New(query, category string, sort Sort, limit int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, domain.NewValidationError("q", fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	category = strings.TrimSpace(category)
	if IsAllCategories(category) {
		category = AllCategories
	}
	if sort == "" {
		sort = SortRelevance
	}
	if !sort.IsValid() {
		return Request{}, domain.NewValidationError("sort", fmt.Sprintf("unsupported value %q", sort))
	}
	if limit < 0 {
		return Request{}, domain.NewValidationError("limit", "must be non-negative")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{query: query, category: category, sort: sort, limit: limit}, nil
}

// IsAllCategories reports whether a category selector means "match all":
// empty or AllCategories in any case. Any other value, "All" included, is a
// real category.
func IsAllCategories(category string) bool {
	return category == "" || strings.EqualFold(category, AllCategories)
}

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Category returns the active category selector.
func (r *Request) Category() string { return r.category }

// Sort returns the post-ranking ordering.
func (r *Request) Sort() Sort { return r.sort }

// Limit returns the maximum number of results (0 = all).
func (r *Request) Limit() int { return r.limit }
