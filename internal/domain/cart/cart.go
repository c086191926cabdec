// Package cart holds a shopper's selected quantities per product.
package cart

import (
	"sort"

	"github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// Cart maps product ID to quantity. Values are immutable: every mutation
// returns a new Cart.
type Cart struct {
	qty map[string]int
}

// Line is a cart entry resolved against the catalog.
type Line struct {
	Product product.Product
	Qty     int
}

// LineTotal returns unit price times quantity.
func (l Line) LineTotal() float64 { return l.Product.Price() * float64(l.Qty) }

// New builds a cart from raw quantities, dropping non-positive entries.
func New(qty map[string]int) Cart {
	c := Cart{qty: make(map[string]int, len(qty))}
	for id, n := range qty {
		if id != "" && n > 0 {
			c.qty[id] = n
		}
	}
	return c
}

// Quantities returns a copy of the raw quantities.
func (c Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.qty))
	for id, n := range c.qty {
		out[id] = n
	}
	return out
}

// Qty returns the quantity held for id.
func (c Cart) Qty(id string) int { return c.qty[id] }

// IsEmpty reports whether the cart holds nothing.
func (c Cart) IsEmpty() bool { return len(c.qty) == 0 }

// Add puts one more unit of id into the cart.
func (c Cart) Add(id string) Cart { return c.Change(id, 1) }

// Change adjusts the quantity of id by delta; the entry is removed at <= 0.
func (c Cart) Change(id string, delta int) Cart {
	next := c.Quantities()
	n := next[id] + delta
	if n <= 0 {
		delete(next, id)
	} else {
		next[id] = n
	}
	return Cart{qty: next}
}

// Remove drops id from the cart.
func (c Cart) Remove(id string) Cart {
	next := c.Quantities()
	delete(next, id)
	return Cart{qty: next}
}

// Lines resolves the cart against catalog in catalog order. IDs missing from
// the catalog are skipped.
func (c Cart) Lines(catalog []product.Product) []Line {
	lines := make([]Line, 0, len(c.qty))
	seen := make(map[string]struct{}, len(c.qty))
	for i := range catalog {
		id := catalog[i].ID()
		n, ok := c.qty[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		lines = append(lines, Line{Product: catalog[i], Qty: n})
	}
	return lines
}

// Missing returns the IDs that do not resolve against catalog, sorted.
func (c Cart) Missing(catalog []product.Product) []string {
	known := make(map[string]struct{}, len(catalog))
	for i := range catalog {
		known[catalog[i].ID()] = struct{}{}
	}
	var out []string
	for id := range c.qty {
		if _, ok := known[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
