package admin

import (
	"context"

	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
)

// ProductStore is the catalog as the admin console sees it, hidden items included.
type ProductStore interface {
	List(ctx context.Context) ([]domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	Create(ctx context.Context, p domprod.Product) error
	Update(ctx context.Context, p domprod.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// OrderStore reads orders and moves them through fulfilment.
type OrderStore interface {
	List(ctx context.Context, limit int) ([]domorder.Order, error)
	UpdateStatus(ctx context.Context, id string, status domorder.Status) error
}

// SalesReader reads the daily sales series.
type SalesReader interface {
	LastDays(ctx context.Context, n int) ([]domsales.Day, error)
}
