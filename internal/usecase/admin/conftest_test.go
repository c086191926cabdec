package admin

import (
	"context"
	"time"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
)

// --- Mocks ---

type mockProducts struct {
	items   []domprod.Product
	listErr error
}

func (m *mockProducts) List(_ context.Context) ([]domprod.Product, error) {
	return m.items, m.listErr
}

func (m *mockProducts) index(id string) int {
	for i := range m.items {
		if m.items[i].ID() == id {
			return i
		}
	}
	return -1
}

func (m *mockProducts) Get(_ context.Context, id string) (domprod.Product, error) {
	if i := m.index(id); i >= 0 {
		return m.items[i], nil
	}
	return domprod.Product{}, domain.ErrProductNotFound
}

func (m *mockProducts) Create(_ context.Context, p domprod.Product) error {
	if m.index(p.ID()) >= 0 {
		return domain.ErrAlreadyExists
	}
	m.items = append([]domprod.Product{p}, m.items...)
	return nil
}

func (m *mockProducts) Update(_ context.Context, p domprod.Product) error {
	i := m.index(p.ID())
	if i < 0 {
		return domain.ErrProductNotFound
	}
	m.items[i] = p
	return nil
}

func (m *mockProducts) SetActive(_ context.Context, id string, active bool) error {
	i := m.index(id)
	if i < 0 {
		return domain.ErrProductNotFound
	}
	m.items[i] = m.items[i].WithActive(active)
	return nil
}

func (m *mockProducts) Delete(_ context.Context, id string) error {
	i := m.index(id)
	if i < 0 {
		return domain.ErrProductNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

type mockOrders struct {
	orders    []domorder.Order
	listLimit int
	updated   map[string]domorder.Status
	err       error
}

func (m *mockOrders) List(_ context.Context, limit int) ([]domorder.Order, error) {
	m.listLimit = limit
	return m.orders, m.err
}

func (m *mockOrders) UpdateStatus(_ context.Context, id string, status domorder.Status) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.orders {
		if m.orders[i].ID() == id {
			m.updated[id] = status
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

type mockSales struct {
	days []domsales.Day
	err  error
}

func (m *mockSales) LastDays(_ context.Context, n int) ([]domsales.Day, error) {
	if m.err != nil {
		return nil, m.err
	}
	if n < len(m.days) {
		return m.days[len(m.days)-n:], nil
	}
	return m.days, nil
}

// --- Helpers ---

var testNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func prod(id, name, code, category string, stock int, active bool) domprod.Product {
	return domprod.Reconstruct(id, domprod.Attributes{
		Name:     name,
		Code:     code,
		Category: category,
		StockQty: stock,
		Active:   active,
	}, 0)
}

func placed(id, email string, total float64, at time.Time, status domorder.Status) domorder.Order {
	return domorder.Reconstruct(id, email, domorder.Totals{Subtotal: total, Total: total}, status, at.UnixMilli(), nil)
}

type fixture struct {
	svc      *Service
	products *mockProducts
	orders   *mockOrders
	sales    *mockSales
}

func newFixture() *fixture {
	f := &fixture{
		products: &mockProducts{items: []domprod.Product{
			prod("hoodie", "Alumni Hoodie", "HOOD", "Apparel", 3, true),
			prod("mug", "Classic Mug", "MUG", "Drinkware", 40, true),
			prod("scarf", "Heritage Scarf", "SCRF", "Apparel", 0, false),
		}},
		orders: &mockOrders{updated: map[string]domorder.Status{}},
		sales:  &mockSales{},
	}
	f.svc = New(f.products, f.orders, f.sales, Config{})
	f.svc.now = func() time.Time { return testNow }
	f.svc.newID = func() string { return "new-id" }
	return f
}
