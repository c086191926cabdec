package product

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Storefront fallbacks for products saved without the optional display fields.
const (
	DefaultSubtitle    = "Official alumni merchandise"
	DefaultCategory    = "General"
	DefaultCode        = "DBHS"
	DefaultDescription = "Official DBHS alumni product."
	DefaultSize        = "One Size"
	DefaultRating      = 4.7
	DefaultReviewCount = 24
	MaxRating          = 5
)

// Attributes holds the mutable product fields.
type Attributes struct {
	Name        string
	Subtitle    string
	Category    string
	Code        string
	Price       float64
	Rating      float64
	ReviewCount int
	StockQty    int
	Active      bool
	Description string
	Sizes       []string
	Details     []string
}

// Product is a catalog item (immutable value object).
type Product struct {
	id        string
	attrs     Attributes
	createdAt int64 // unix millis
}

// New validates and creates a Product. Name is required, code is upper-cased,
// category falls back to "General", price/stock/rating must be in range.
func New(id string, attrs Attributes, createdAt int64) (Product, error) {
	if id == "" {
		return Product{}, domain.NewValidationError("id", "is required")
	}
	if len(id) > 128 || !idRegex.MatchString(id) {
		return Product{}, domain.NewValidationError("id", "must be alphanumeric with underscores and hyphens")
	}

	attrs.Name = strings.TrimSpace(attrs.Name)
	attrs.Subtitle = strings.TrimSpace(attrs.Subtitle)
	attrs.Code = strings.ToUpper(strings.TrimSpace(attrs.Code))
	attrs.Category = strings.TrimSpace(attrs.Category)
	attrs.Description = strings.TrimSpace(attrs.Description)
	if attrs.Category == "" {
		attrs.Category = DefaultCategory
	}

	if attrs.Name == "" {
		return Product{}, domain.NewValidationError("name", "is required")
	}
	if math.IsNaN(attrs.Price) || math.IsInf(attrs.Price, 0) || attrs.Price < 0 {
		return Product{}, domain.NewValidationError("price", "must be a non-negative number")
	}
	if attrs.StockQty < 0 {
		return Product{}, domain.NewValidationError("stock_qty", "must be non-negative")
	}
	if math.IsNaN(attrs.Rating) || attrs.Rating < 0 || attrs.Rating > MaxRating {
		return Product{}, domain.NewValidationError("rating", fmt.Sprintf("must be between 0 and %d", MaxRating))
	}
	if attrs.ReviewCount < 0 {
		return Product{}, domain.NewValidationError("review_count", "must be non-negative")
	}

	attrs.Sizes = cloneStrings(attrs.Sizes)
	attrs.Details = cloneStrings(attrs.Details)

	return Product{id: id, attrs: attrs, createdAt: createdAt}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(id string, attrs Attributes, createdAt int64) Product {
	return Product{id: id, attrs: attrs, createdAt: createdAt}
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the display name.
func (p *Product) Name() string { return p.attrs.Name }

// Subtitle returns the short tagline.
func (p *Product) Subtitle() string { return p.attrs.Subtitle }

// Category returns the free-text category label.
func (p *Product) Category() string { return p.attrs.Category }

// Code returns the SKU-like short code.
func (p *Product) Code() string { return p.attrs.Code }

// Price returns the price in JMD.
func (p *Product) Price() float64 { return p.attrs.Price }

// Rating returns the average rating (0 when unrated).
func (p *Product) Rating() float64 { return p.attrs.Rating }

// ReviewCount returns the number of reviews.
func (p *Product) ReviewCount() int { return p.attrs.ReviewCount }

// StockQty returns the units on hand.
func (p *Product) StockQty() int { return p.attrs.StockQty }

// Active reports whether the product is visible in the storefront.
func (p *Product) Active() bool { return p.attrs.Active }

// Description returns the long description.
func (p *Product) Description() string { return p.attrs.Description }

// Sizes returns the available sizes.
func (p *Product) Sizes() []string { return p.attrs.Sizes }

// Details returns the bullet-point details.
func (p *Product) Details() []string { return p.attrs.Details }

// CreatedAt returns the creation time in unix millis.
func (p *Product) CreatedAt() int64 { return p.createdAt }

// Attributes returns a copy of the mutable fields.
func (p *Product) Attributes() Attributes {
	a := p.attrs
	a.Sizes = cloneStrings(a.Sizes)
	a.Details = cloneStrings(a.Details)
	return a
}

// WithActive returns a copy with the visibility flag set.
func (p *Product) WithActive(active bool) Product {
	a := p.Attributes()
	a.Active = active
	return Product{id: p.id, attrs: a, createdAt: p.createdAt}
}

// WithStorefrontDefaults returns a copy with empty display fields filled the
// way the shop renders them.
func (p *Product) WithStorefrontDefaults() Product {
	a := p.Attributes()
	if a.Subtitle == "" {
		a.Subtitle = DefaultSubtitle
	}
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	if a.Code == "" {
		a.Code = DefaultCode
	}
	if a.Description == "" {
		a.Description = DefaultDescription
	}
	if len(a.Sizes) == 0 {
		a.Sizes = []string{DefaultSize}
	}
	if len(a.Details) == 0 {
		a.Details = DefaultDetails()
	}
	if a.Rating == 0 && a.ReviewCount == 0 {
		a.Rating = DefaultRating
		a.ReviewCount = DefaultReviewCount
	}
	return Product{id: p.id, attrs: a, createdAt: p.createdAt}
}

// DefaultDetails is the detail list shown for products saved without one.
func DefaultDetails() []string {
	return []string{"Official alumni product", "Member-only store item"}
}

// LowStock reports whether stock is at or below the threshold.
func (p *Product) LowStock(threshold int) bool { return p.attrs.StockQty <= threshold }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
