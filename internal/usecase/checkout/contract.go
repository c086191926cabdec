package checkout

import (
	"context"
	"time"

	domcart "github.com/dbhs-alumni/merchstore/internal/domain/cart"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
)

// Catalog supplies the products a cart may hold.
type Catalog interface {
	Storefront(ctx context.Context) ([]domprod.Product, error)
}

// CartStore persists carts and region preferences per member.
type CartStore interface {
	Load(ctx context.Context, email string) (domcart.Cart, error)
	Save(ctx context.Context, email string, c domcart.Cart) error
	Clear(ctx context.Context, email string) error
	LoadRegion(ctx context.Context, email string) (region.Region, bool, error)
	SaveRegion(ctx context.Context, email string, r region.Region) error
}

// OrderWriter stores placed orders.
type OrderWriter interface {
	Insert(ctx context.Context, o domorder.Order) error
	InsertItems(ctx context.Context, orderID string, items []domorder.Item) error
	Remove(ctx context.Context, orderID string) error
}

// SalesRecorder books an order total into the daily counters.
type SalesRecorder interface {
	Record(ctx context.Context, at time.Time, totalJMD float64) error
}
