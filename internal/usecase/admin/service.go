package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
	"github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/metrics"
)

// Console defaults.
const (
	DefaultOrderLimit        = 200
	DefaultLowStockThreshold = 5
	lowStockWatchlistSize    = 5
	dashboardDays            = 7
)

// Config holds admin console options.
type Config struct {
	OrderLimit        int
	LowStockThreshold int
}

// Dashboard is the admin overview.
type Dashboard struct {
	TodaySales     float64
	TodayOrders    int
	TodayCustomers int
	ActiveProducts int
	LowStock       []domprod.Product
	Week           []domsales.Day
}

// Service backs the admin console.
type Service struct {
	products ProductStore
	orders   OrderStore
	sales    SalesReader
	cfg      Config
	now      func() time.Time
	newID    func() string
}

// New creates an admin service.
func New(products ProductStore, orders OrderStore, sales SalesReader, cfg Config) *Service {
	if cfg.OrderLimit <= 0 {
		cfg.OrderLimit = DefaultOrderLimit
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = DefaultLowStockThreshold
	}
	return &Service{
		products: products,
		orders:   orders,
		sales:    sales,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Products lists the whole catalog, newest first, narrowed by f.
func (s *Service) Products(ctx context.Context, f ProductFilter) ([]domprod.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	items, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return FilterProducts(items, f), nil
}

// CreateProduct validates and stores a new product under a fresh ID.
func (s *Service) CreateProduct(ctx context.Context, attrs domprod.Attributes) (domprod.Product, error) {
	p, err := domprod.New(s.newID(), attrs, s.now().UnixMilli())
	if err != nil {
		return domprod.Product{}, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return domprod.Product{}, fmt.Errorf("create product: %w", err)
	}
	logger.FromContext(ctx).Info("Product created", zap.String("product_id", p.ID()), zap.String("name", p.Name()))
	return p, nil
}

// UpdateProduct replaces the editable fields of a product. Creation time is kept.
func (s *Service) UpdateProduct(ctx context.Context, id string, attrs domprod.Attributes) (domprod.Product, error) {
	current, err := s.products.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}
	p, err := domprod.New(id, attrs, current.CreatedAt())
	if err != nil {
		return domprod.Product{}, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return domprod.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// SetVisibility shows or hides a product in the storefront.
func (s *Service) SetVisibility(ctx context.Context, id string, active bool) error {
	if err := s.products.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set visibility: %w", err)
	}
	return nil
}

// DeleteProduct removes a product. Placed orders keep their item snapshots.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	logger.FromContext(ctx).Info("Product deleted", zap.String("product_id", id))
	return nil
}

// Orders lists the most recent orders, newest first. An empty status keeps all.
func (s *Service) Orders(ctx context.Context, status string) ([]domorder.Order, error) {
	var st domorder.Status
	if strings.TrimSpace(status) != "" && !strings.EqualFold(strings.TrimSpace(status), "all") {
		parsed, err := domorder.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	orders, err := s.orders.List(ctx, s.cfg.OrderLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return FilterOrders(orders, st), nil
}

// UpdateOrderStatus moves an order to one of the four known statuses.
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) (domorder.Status, error) {
	st, err := domorder.ParseStatus(status)
	if err != nil {
		return "", err
	}
	if err := s.orders.UpdateStatus(ctx, id, st); err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}
	metrics.OrdersTotal.WithLabelValues(string(st)).Inc()
	return st, nil
}

// Sales returns the last n days of sales, oldest first.
func (s *Service) Sales(ctx context.Context, days int) ([]domsales.Day, error) {
	return s.sales.LastDays(ctx, days)
}

// Dashboard loads products, recent orders and the weekly series concurrently.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		products []domprod.Product
		orders   []domorder.Order
		week     []domsales.Day
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx, s.cfg.OrderLimit)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		week, err = s.sales.LastDays(gctx, dashboardDays)
		if err != nil {
			return fmt.Errorf("sales series: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Week: week, LowStock: []domprod.Product{}}

	since := startOfDay(s.now()).UnixMilli()
	customers := make(map[string]struct{})
	for i := range orders {
		o := &orders[i]
		if o.CreatedAt() < since {
			continue
		}
		d.TodayOrders++
		d.TodaySales += o.Totals().Total
		customers[o.MemberEmail()] = struct{}{}
	}
	d.TodayCustomers = len(customers)

	for i := range products {
		p := &products[i]
		if p.Active() {
			d.ActiveProducts++
		}
		if p.LowStock(s.cfg.LowStockThreshold) && len(d.LowStock) < lowStockWatchlistSize {
			d.LowStock = append(d.LowStock, *p)
		}
	}
	return d, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
