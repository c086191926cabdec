package search

import (
	"context"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// Catalog supplies the storefront-visible products, newest first.
type Catalog interface {
	Storefront(ctx context.Context) ([]domprod.Product, error)
}
