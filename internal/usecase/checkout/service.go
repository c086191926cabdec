package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domcart "github.com/dbhs-alumni/merchstore/internal/domain/cart"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
	"github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/metrics"
)

// DefaultShippingFee is the flat delivery charge in JMD.
const DefaultShippingFee = 950

// Config holds checkout pricing options.
type Config struct {
	ShippingFee   float64
	DefaultRegion region.Region
}

// View is a cart resolved against the live catalog.
type View struct {
	Lines   []domcart.Line
	Totals  domorder.Totals
	Region  region.Region
	Dropped []string // entries removed because the product is gone or hidden
}

// Service manages member carts and turns them into orders.
type Service struct {
	catalog Catalog
	carts   CartStore
	orders  OrderWriter
	sales   SalesRecorder
	cfg     Config
	now     func() time.Time
	newID   func() string
}

// New creates a checkout service.
func New(catalog Catalog, carts CartStore, orders OrderWriter, sales SalesRecorder, cfg Config) *Service {
	if cfg.ShippingFee < 0 {
		cfg.ShippingFee = 0
	}
	if !cfg.DefaultRegion.IsValid() {
		cfg.DefaultRegion = region.Default
	}
	return &Service{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		sales:   sales,
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// View returns the member's cart with totals. Entries that no longer resolve
// are pruned from the stored cart.
func (s *Service) View(ctx context.Context, email string) (View, error) {
	c, err := s.carts.Load(ctx, email)
	if err != nil {
		return View{}, fmt.Errorf("load cart: %w", err)
	}
	return s.resolve(ctx, email, c)
}

// AddItem puts one unit of a storefront-visible product into the cart.
func (s *Service) AddItem(ctx context.Context, email, productID string) (View, error) {
	items, err := s.catalog.Storefront(ctx)
	if err != nil {
		return View{}, fmt.Errorf("load catalog: %w", err)
	}
	if !contains(items, productID) {
		return View{}, domain.ErrProductNotFound
	}
	return s.update(ctx, email, func(c domcart.Cart) domcart.Cart { return c.Add(productID) })
}

// ChangeQty adjusts a line by delta. The line is removed at zero or below.
func (s *Service) ChangeQty(ctx context.Context, email, productID string, delta int) (View, error) {
	return s.update(ctx, email, func(c domcart.Cart) domcart.Cart { return c.Change(productID, delta) })
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, email, productID string) (View, error) {
	return s.update(ctx, email, func(c domcart.Cart) domcart.Cart { return c.Remove(productID) })
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, email string) error {
	if err := s.carts.Clear(ctx, email); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Region returns the member's saved region, or the configured default.
func (s *Service) Region(ctx context.Context, email string) (region.Region, error) {
	r, ok, err := s.carts.LoadRegion(ctx, email)
	if err != nil {
		return "", fmt.Errorf("load region: %w", err)
	}
	if !ok {
		return s.cfg.DefaultRegion, nil
	}
	return r, nil
}

// SetRegion validates and saves the member's region preference.
func (s *Service) SetRegion(ctx context.Context, email, raw string) (region.Region, error) {
	r, err := region.Parse(raw)
	if err != nil {
		return "", err
	}
	if err := s.carts.SaveRegion(ctx, email, r); err != nil {
		return "", fmt.Errorf("save region: %w", err)
	}
	return r, nil
}

// PlaceOrder turns the member's cart into an order with status new. The
// cart is cleared only after the order and its items are stored.
func (s *Service) PlaceOrder(ctx context.Context, email string) (domorder.Order, error) {
	if email == "" {
		return domorder.Order{}, domain.ErrUnauthenticated
	}

	c, err := s.carts.Load(ctx, email)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("load cart: %w", err)
	}
	items, err := s.catalog.Storefront(ctx)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("load catalog: %w", err)
	}
	lines := c.Lines(items)
	if len(lines) == 0 {
		return domorder.Order{}, domain.ErrEmptyCart
	}

	now := s.now()
	o, err := domorder.New(s.newID(), email, lines, s.cfg.ShippingFee, now.UnixMilli())
	if err != nil {
		return domorder.Order{}, err
	}

	log := logger.FromContext(ctx)
	if err := s.orders.Insert(ctx, o); err != nil {
		return domorder.Order{}, fmt.Errorf("insert order: %w", err)
	}
	if err := s.orders.InsertItems(ctx, o.ID(), o.Items()); err != nil {
		if rmErr := s.orders.Remove(ctx, o.ID()); rmErr != nil {
			log.Error("Failed to remove order after items insert failed",
				zap.String("order_id", o.ID()), zap.Error(rmErr))
		}
		return domorder.Order{}, fmt.Errorf("insert order items: %w", err)
	}

	totals := o.Totals()
	metrics.OrdersTotal.WithLabelValues(string(domorder.StatusNew)).Inc()
	metrics.OrderValue.Observe(totals.Total)

	// The order stands even if bookkeeping below fails.
	if err := s.sales.Record(ctx, now, totals.Total); err != nil {
		log.Warn("Failed to record sale", zap.String("order_id", o.ID()), zap.Error(err))
	}
	if err := s.carts.Clear(ctx, email); err != nil {
		log.Warn("Failed to clear cart after order", zap.String("order_id", o.ID()), zap.Error(err))
	}

	log.Info("Order placed",
		zap.String("order_id", o.ID()),
		zap.Int("lines", len(lines)),
		zap.Float64("total_jmd", totals.Total),
	)
	return o, nil
}

func (s *Service) update(ctx context.Context, email string, fn func(domcart.Cart) domcart.Cart) (View, error) {
	c, err := s.carts.Load(ctx, email)
	if err != nil {
		return View{}, fmt.Errorf("load cart: %w", err)
	}
	next := fn(c)
	if err := s.carts.Save(ctx, email, next); err != nil {
		return View{}, fmt.Errorf("save cart: %w", err)
	}
	return s.resolve(ctx, email, next)
}

func (s *Service) resolve(ctx context.Context, email string, c domcart.Cart) (View, error) {
	items, err := s.catalog.Storefront(ctx)
	if err != nil {
		return View{}, fmt.Errorf("load catalog: %w", err)
	}
	r, err := s.Region(ctx, email)
	if err != nil {
		return View{}, err
	}

	dropped := c.Missing(items)
	if len(dropped) > 0 {
		pruned := c
		for _, id := range dropped {
			pruned = pruned.Remove(id)
		}
		if err := s.carts.Save(ctx, email, pruned); err != nil {
			return View{}, fmt.Errorf("save cart: %w", err)
		}
		metrics.CartLinesDropped.WithLabelValues("unavailable").Add(float64(len(dropped)))
		c = pruned
	}

	lines := c.Lines(items)
	return View{
		Lines:   lines,
		Totals:  domorder.ComputeTotals(lines, s.cfg.ShippingFee),
		Region:  r,
		Dropped: dropped,
	}, nil
}

func contains(items []domprod.Product, id string) bool {
	for i := range items {
		if items[i].ID() == id {
			return true
		}
	}
	return false
}
