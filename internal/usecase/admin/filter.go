package admin

import (
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
)

// Visibility filter values.
const (
	VisibilityAll    = "all"
	VisibilityActive = "active"
	VisibilityHidden = "hidden"

	// CategoryAll is the admin console's match-all category selector.
	CategoryAll = "all"
)

// ProductFilter narrows the admin product table.
type ProductFilter struct {
	Text       string // case-insensitive substring of name or code
	Category   string // "all" or an exact category
	Visibility string // all, active or hidden
}

// Validate normalizes empty fields to "all" and rejects unknown visibilities.
func (f *ProductFilter) Validate() error {
	f.Text = strings.TrimSpace(f.Text)
	f.Category = strings.TrimSpace(f.Category)
	f.Visibility = strings.ToLower(strings.TrimSpace(f.Visibility))
	if f.Visibility == "" {
		f.Visibility = VisibilityAll
	}
	switch f.Visibility {
	case VisibilityAll, VisibilityActive, VisibilityHidden:
		return nil
	}
	return domain.NewValidationError("status", "must be one of all, active, hidden")
}

// allCategories accepts the admin "all" selector (any case) on top of the
// storefront ones.
func (f *ProductFilter) allCategories() bool {
	return request.IsAllCategories(f.Category) || strings.EqualFold(f.Category, CategoryAll)
}

// FilterProducts keeps catalog order.
func FilterProducts(items []domprod.Product, f ProductFilter) []domprod.Product {
	text := strings.ToLower(f.Text)
	out := make([]domprod.Product, 0, len(items))
	for i := range items {
		p := &items[i]
		if text != "" &&
			!strings.Contains(strings.ToLower(p.Name()), text) &&
			!strings.Contains(strings.ToLower(p.Code()), text) {
			continue
		}
		if !f.allCategories() && p.Category() != f.Category {
			continue
		}
		switch f.Visibility {
		case VisibilityActive:
			if !p.Active() {
				continue
			}
		case VisibilityHidden:
			if p.Active() {
				continue
			}
		}
		out = append(out, *p)
	}
	return out
}

// FilterOrders keeps orders in status; an empty status keeps all.
func FilterOrders(orders []domorder.Order, status domorder.Status) []domorder.Order {
	if status == "" {
		return orders
	}
	out := make([]domorder.Order, 0, len(orders))
	for i := range orders {
		if orders[i].Status() == status {
			out = append(out, orders[i])
		}
	}
	return out
}
