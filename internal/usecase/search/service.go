package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/engine"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	"github.com/dbhs-alumni/merchstore/internal/domain/search/tier"
	"github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/metrics"
)

// Notices shown above a result grid that did not match the query in scope.
const (
	NoticeWidened      = "No exact results — showing closest matches."
	NoticeEmptyCatalog = "The catalog is empty."
	NoticeUnfiltered   = "No matches — showing all products."
)

// Result is one page of storefront search results.
type Result struct {
	Items  []domprod.Product
	Tier   tier.Tier
	Notice string
	Total  int // matches before the limit was applied
}

// Service runs storefront searches over the active catalog.
type Service struct {
	catalog Catalog
}

// New creates a search service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Search ranks the storefront catalog, applies the requested ordering and
// trims to the limit.
func (s *Service) Search(ctx context.Context, req *request.Request) (Result, error) {
	items, err := s.catalog.Storefront(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}

	out := engine.Evaluate(items, req.Query(), req.Category())
	metrics.SearchTotal.WithLabelValues(string(out.Tier)).Inc()
	if !out.Tier.Exact() {
		logger.FromContext(ctx).Debug("search fell back",
			zap.String("query", req.Query()),
			zap.String("category", req.Category()),
			zap.String("tier", string(out.Tier)),
		)
	}

	ordered := Sort(out.Items, req.Sort())
	total := len(ordered)
	if req.Limit() > 0 && len(ordered) > req.Limit() {
		ordered = ordered[:req.Limit()]
	}

	return Result{
		Items:  ordered,
		Tier:   out.Tier,
		Notice: notice(out.Tier, len(items)),
		Total:  total,
	}, nil
}

func notice(t tier.Tier, catalogSize int) string {
	switch t {
	case tier.Widened:
		return NoticeWidened
	case tier.Unfiltered:
		if catalogSize == 0 {
			return NoticeEmptyCatalog
		}
		return NoticeUnfiltered
	default:
		return ""
	}
}
