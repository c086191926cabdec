package wishlist

import (
	"context"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// Catalog reads storefront-visible products.
type Catalog interface {
	Storefront(ctx context.Context) ([]domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
}

// Store keeps the saved product ids per member.
type Store interface {
	Wishlist(ctx context.Context, email string) ([]string, error)
	Wish(ctx context.Context, email, productID string) error
	Unwish(ctx context.Context, email, productID string) error
	Wished(ctx context.Context, email, productID string) (bool, error)
}
