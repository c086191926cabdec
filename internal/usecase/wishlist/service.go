package wishlist

import (
	"context"
	"fmt"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// Service keeps each member's saved products.
type Service struct {
	catalog Catalog
	store   Store
}

// New creates a wishlist service.
func New(catalog Catalog, store Store) *Service {
	return &Service{catalog: catalog, store: store}
}

// List returns the saved products in catalog order. Saved ids that are
// hidden or deleted are skipped but kept, so they come back if the product
// is shown again.
func (s *Service) List(ctx context.Context, email string) ([]domprod.Product, error) {
	if email == "" {
		return nil, domain.ErrUnauthenticated
	}
	ids, err := s.store.Wishlist(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domprod.Product{}, nil
	}
	saved := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}

	items, err := s.catalog.Storefront(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	out := make([]domprod.Product, 0, len(ids))
	for i := range items {
		if _, ok := saved[items[i].ID()]; ok {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// Add saves a storefront-visible product. Saving it twice is a no-op.
func (s *Service) Add(ctx context.Context, email, productID string) error {
	if email == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return err
	}
	return s.store.Wish(ctx, email, productID)
}

// Remove forgets a saved product. Removing an unsaved id is a no-op.
func (s *Service) Remove(ctx context.Context, email, productID string) error {
	if email == "" {
		return domain.ErrUnauthenticated
	}
	return s.store.Unwish(ctx, email, productID)
}

// Contains reports whether the member saved productID.
func (s *Service) Contains(ctx context.Context, email, productID string) (bool, error) {
	if email == "" {
		return false, domain.ErrUnauthenticated
	}
	return s.store.Wished(ctx, email, productID)
}
