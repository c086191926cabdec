// Package order models placed storefront orders and their totals.
package order

import (
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	"github.com/dbhs-alumni/merchstore/internal/domain/cart"
)

// Status is the fulfilment state of an order.
type Status string

// Order statuses.
const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNew, StatusProcessing, StatusCompleted, StatusCancelled}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus validates a status name (case-insensitive).
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", domain.NewValidationError("status", "must be one of new, processing, completed, cancelled")
	}
	return st, nil
}

// Totals is the money breakdown of a cart or order, in JMD.
type Totals struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// ComputeTotals sums line totals and charges shippingFee only when something
// is being bought.
func ComputeTotals(lines []cart.Line, shippingFee float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.LineTotal()
	}
	shipping := 0.0
	if subtotal > 0 {
		shipping = shippingFee
	}
	return Totals{Subtotal: subtotal, Shipping: shipping, Total: subtotal + shipping}
}

// Item is a product snapshot frozen into an order.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"product_name"`
	Code      string  `json:"product_code"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price_jmd"`
	LineTotal float64 `json:"line_total_jmd"`
}

// ItemsFromLines snapshots resolved cart lines.
func ItemsFromLines(lines []cart.Line) []Item {
	items := make([]Item, len(lines))
	for i, l := range lines {
		items[i] = Item{
			ProductID: l.Product.ID(),
			Name:      l.Product.Name(),
			Code:      l.Product.Code(),
			Qty:       l.Qty,
			UnitPrice: l.Product.Price(),
			LineTotal: l.LineTotal(),
		}
	}
	return items
}

// Order is an immutable placed order.
type Order struct {
	id          string
	memberEmail string
	totals      Totals
	status      Status
	createdAt   int64
	items       []Item
}

// New builds a fresh order in StatusNew from resolved cart lines.
func New(id, memberEmail string, lines []cart.Line, shippingFee float64, createdAt int64) (Order, error) {
	if id == "" {
		return Order{}, domain.NewValidationError("id", "is required")
	}
	email := strings.ToLower(strings.TrimSpace(memberEmail))
	if email == "" {
		return Order{}, domain.ErrUnauthenticated
	}
	if len(lines) == 0 {
		return Order{}, domain.ErrEmptyCart
	}

	return Order{
		id:          id,
		memberEmail: email,
		totals:      ComputeTotals(lines, shippingFee),
		status:      StatusNew,
		createdAt:   createdAt,
		items:       ItemsFromLines(lines),
	}, nil
}

// Reconstruct hydrates an order from storage without validation.
func Reconstruct(id, memberEmail string, totals Totals, status Status, createdAt int64, items []Item) Order {
	return Order{
		id:          id,
		memberEmail: memberEmail,
		totals:      totals,
		status:      status,
		createdAt:   createdAt,
		items:       items,
	}
}

// ID returns the order identifier.
func (o *Order) ID() string { return o.id }

// MemberEmail returns the purchasing member's email.
func (o *Order) MemberEmail() string { return o.memberEmail }

// Totals returns the money breakdown.
func (o *Order) Totals() Totals { return o.totals }

// Status returns the fulfilment state.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the placement time (unix millis).
func (o *Order) CreatedAt() int64 { return o.createdAt }

// Items returns a copy of the order items.
func (o *Order) Items() []Item {
	if o.items == nil {
		return nil
	}
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// WithItems returns a copy carrying items.
func (o Order) WithItems(items []Item) Order {
	o.items = items
	return o
}

// WithStatus returns a copy in status s.
func (o Order) WithStatus(s Status) Order {
	o.status = s
	return o
}
