package checkout

import (
	"context"
	"time"

	domcart "github.com/dbhs-alumni/merchstore/internal/domain/cart"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
)

// --- Mocks ---

type mockCatalog struct {
	items []domprod.Product
	err   error
}

func (m *mockCatalog) Storefront(_ context.Context) ([]domprod.Product, error) {
	return m.items, m.err
}

type mockCarts struct {
	carts   map[string]domcart.Cart
	regions map[string]region.Region
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func newMockCarts() *mockCarts {
	return &mockCarts{carts: map[string]domcart.Cart{}, regions: map[string]region.Region{}}
}

func (m *mockCarts) Load(_ context.Context, email string) (domcart.Cart, error) {
	if m.loadErr != nil {
		return domcart.Cart{}, m.loadErr
	}
	if c, ok := m.carts[email]; ok {
		return c, nil
	}
	return domcart.New(nil), nil
}

func (m *mockCarts) Save(_ context.Context, email string, c domcart.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.carts[email] = c
	return nil
}

func (m *mockCarts) Clear(_ context.Context, email string) error {
	m.clears++
	delete(m.carts, email)
	return nil
}

func (m *mockCarts) LoadRegion(_ context.Context, email string) (region.Region, bool, error) {
	r, ok := m.regions[email]
	return r, ok, nil
}

func (m *mockCarts) SaveRegion(_ context.Context, email string, r region.Region) error {
	m.regions[email] = r
	return nil
}

type mockOrders struct {
	inserted  []domorder.Order
	items     map[string][]domorder.Item
	removed   []string
	insertErr error
	itemsErr  error
}

func newMockOrders() *mockOrders {
	return &mockOrders{items: map[string][]domorder.Item{}}
}

func (m *mockOrders) Insert(_ context.Context, o domorder.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, o)
	return nil
}

func (m *mockOrders) InsertItems(_ context.Context, orderID string, items []domorder.Item) error {
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.items[orderID] = items
	return nil
}

func (m *mockOrders) Remove(_ context.Context, orderID string) error {
	m.removed = append(m.removed, orderID)
	return nil
}

type mockSales struct {
	recorded []float64
	err      error
}

func (m *mockSales) Record(_ context.Context, _ time.Time, total float64) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, total)
	return nil
}

// --- Helpers ---

const member = "grad@example.org"

func prod(id string, price float64) domprod.Product {
	return domprod.Reconstruct(id, domprod.Attributes{Name: id, Price: price, Active: true}, 0)
}

type fixture struct {
	svc     *Service
	catalog *mockCatalog
	carts   *mockCarts
	orders  *mockOrders
	sales   *mockSales
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &mockCatalog{items: []domprod.Product{prod("hoodie", 6500), prod("mug", 1800)}},
		carts:   newMockCarts(),
		orders:  newMockOrders(),
		sales:   &mockSales{},
	}
	f.svc = New(f.catalog, f.carts, f.orders, f.sales, Config{ShippingFee: DefaultShippingFee})
	f.svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	f.svc.newID = func() string { return "order-1" }
	return f
}
