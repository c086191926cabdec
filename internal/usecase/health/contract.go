package health

import (
	"context"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader checks that the storefront catalog can be read.
type CatalogReader interface {
	Storefront(ctx context.Context) ([]domprod.Product, error)
}
