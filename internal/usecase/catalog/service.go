package catalog

import (
	"context"
	"fmt"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
)

// Strip sizes on the storefront and the product page.
const (
	DefaultTopPicks = 5
	DefaultRelated  = 4
)

// Service serves the public, storefront-visible catalog.
type Service struct {
	repo     Repository
	topPicks int
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo, topPicks: DefaultTopPicks}
}

// Storefront returns active products newest first, with display defaults applied.
func (s *Service) Storefront(ctx context.Context) ([]domprod.Product, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	out := make([]domprod.Product, len(items))
	for i := range items {
		out[i] = items[i].WithStorefrontDefaults()
	}
	return out, nil
}

// Get returns one storefront-visible product. Hidden products read as missing.
func (s *Service) Get(ctx context.Context, id string) (domprod.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}
	if !p.Active() {
		return domprod.Product{}, domain.ErrProductNotFound
	}
	return p.WithStorefrontDefaults(), nil
}

// Categories returns "All Categories" followed by the distinct categories in
// catalog order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.Storefront(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(items), nil
}

// TopPicks returns the newest few storefront products.
func (s *Service) TopPicks(ctx context.Context) ([]domprod.Product, error) {
	items, err := s.Storefront(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > s.topPicks {
		items = items[:s.topPicks]
	}
	return items, nil
}

// Related returns up to n other storefront products in catalog order, for
// the product page of id. n <= 0 means DefaultRelated. A hidden or unknown id
// yields domain.ErrProductNotFound.
func (s *Service) Related(ctx context.Context, id string, n int) ([]domprod.Product, error) {
	if n <= 0 {
		n = DefaultRelated
	}
	items, err := s.Storefront(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	out := make([]domprod.Product, 0, n)
	for i := range items {
		if items[i].ID() == id {
			found = true
			continue
		}
		if len(out) < n {
			out = append(out, items[i])
		}
	}
	if !found {
		return nil, domain.ErrProductNotFound
	}
	return out, nil
}

// Categories lists "All Categories" plus each distinct category of items.
func Categories(items []domprod.Product) []string {
	out := []string{request.AllCategories}
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		c := items[i].Category()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
