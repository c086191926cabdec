package product

import (
	"encoding/json"
	"fmt"
	"strconv"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

const (
	fieldName        = "name"
	fieldSubtitle    = "subtitle"
	fieldCategory    = "category"
	fieldCode        = "code"
	fieldPrice       = "price_jmd"
	fieldRating      = "rating"
	fieldReviewCount = "review_count"
	fieldStockQty    = "stock_qty"
	fieldActive      = "active"
	fieldDescription = "description"
	fieldSizes       = "sizes_json"
	fieldDetails     = "details_json"
	fieldCreatedAt   = "created_at"
)

// productToHash converts a domain Product to a map for HSET.
func productToHash(p *domprod.Product) map[string]string {
	return map[string]string{
		fieldName:        p.Name(),
		fieldSubtitle:    p.Subtitle(),
		fieldCategory:    p.Category(),
		fieldCode:        p.Code(),
		fieldPrice:       strconv.FormatFloat(p.Price(), 'f', -1, 64),
		fieldRating:      strconv.FormatFloat(p.Rating(), 'f', -1, 64),
		fieldReviewCount: strconv.Itoa(p.ReviewCount()),
		fieldStockQty:    strconv.Itoa(p.StockQty()),
		fieldActive:      formatBool(p.Active()),
		fieldDescription: p.Description(),
		fieldSizes:       marshalList(p.Sizes()),
		fieldDetails:     marshalList(p.Details()),
		fieldCreatedAt:   strconv.FormatInt(p.CreatedAt(), 10),
	}
}

// productFromHash hydrates a domain Product from an HGETALL result map.
// Optional numeric fields that are absent or blank read as zero.
func productFromHash(id string, m map[string]string) (domprod.Product, error) {
	price, err := parseFloat(m[fieldPrice])
	if err != nil {
		return domprod.Product{}, fmt.Errorf("invalid %s: %w", fieldPrice, err)
	}
	rating, err := parseFloat(m[fieldRating])
	if err != nil {
		return domprod.Product{}, fmt.Errorf("invalid %s: %w", fieldRating, err)
	}
	reviews, err := parseInt(m[fieldReviewCount])
	if err != nil {
		return domprod.Product{}, fmt.Errorf("invalid %s: %w", fieldReviewCount, err)
	}
	stock, err := parseInt(m[fieldStockQty])
	if err != nil {
		return domprod.Product{}, fmt.Errorf("invalid %s: %w", fieldStockQty, err)
	}
	createdAt, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("invalid %s: %w", fieldCreatedAt, err)
	}

	return domprod.Reconstruct(id, domprod.Attributes{
		Name:        m[fieldName],
		Subtitle:    m[fieldSubtitle],
		Category:    m[fieldCategory],
		Code:        m[fieldCode],
		Price:       price,
		Rating:      rating,
		ReviewCount: int(reviews),
		StockQty:    int(stock),
		Active:      m[fieldActive] == "1",
		Description: m[fieldDescription],
		Sizes:       unmarshalList(m[fieldSizes]),
		Details:     unmarshalList(m[fieldDetails]),
	}, createdAt), nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func marshalList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

// unmarshalList tolerates blank or malformed values by returning nil.
func unmarshalList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
