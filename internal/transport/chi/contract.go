package chi

import (
	"context"

	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	"github.com/dbhs-alumni/merchstore/internal/usecase/admin"
	"github.com/dbhs-alumni/merchstore/internal/usecase/checkout"
	healthuc "github.com/dbhs-alumni/merchstore/internal/usecase/health"
	searchuc "github.com/dbhs-alumni/merchstore/internal/usecase/search"
)

// Catalog serves storefront-visible products.
type Catalog interface {
	Get(ctx context.Context, id string) (domprod.Product, error)
	Categories(ctx context.Context) ([]string, error)
	TopPicks(ctx context.Context) ([]domprod.Product, error)
	Related(ctx context.Context, id string, n int) ([]domprod.Product, error)
}

// Wishlist keeps each member's saved products.
type Wishlist interface {
	List(ctx context.Context, email string) ([]domprod.Product, error)
	Add(ctx context.Context, email, productID string) error
	Remove(ctx context.Context, email, productID string) error
	Contains(ctx context.Context, email, productID string) (bool, error)
}

// Searcher runs storefront searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Result, error)
}

// Checkout manages member carts and orders.
type Checkout interface {
	View(ctx context.Context, email string) (checkout.View, error)
	AddItem(ctx context.Context, email, productID string) (checkout.View, error)
	ChangeQty(ctx context.Context, email, productID string, delta int) (checkout.View, error)
	RemoveItem(ctx context.Context, email, productID string) (checkout.View, error)
	Clear(ctx context.Context, email string) error
	SetRegion(ctx context.Context, email, raw string) (region.Region, error)
	PlaceOrder(ctx context.Context, email string) (domorder.Order, error)
}

// Auth runs the sign-in flow and resolves sessions.
type Auth interface {
	SessionAuthenticator
	AdminChecker
	BeginSignIn(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (dommember.Session, error)
	SignOut(ctx context.Context, token string) error
}

// Admin backs the admin console.
type Admin interface {
	Products(ctx context.Context, f admin.ProductFilter) ([]domprod.Product, error)
	CreateProduct(ctx context.Context, attrs domprod.Attributes) (domprod.Product, error)
	UpdateProduct(ctx context.Context, id string, attrs domprod.Attributes) (domprod.Product, error)
	SetVisibility(ctx context.Context, id string, active bool) error
	DeleteProduct(ctx context.Context, id string) error
	Orders(ctx context.Context, status string) ([]domorder.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (domorder.Status, error)
	Dashboard(ctx context.Context) (admin.Dashboard, error)
	Sales(ctx context.Context, days int) ([]domsales.Day, error)
}

// Health reports component health.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}
