package catalog

import (
	"context"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// Repository reads the stored catalog.
type Repository interface {
	ListActive(ctx context.Context) ([]domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
}
