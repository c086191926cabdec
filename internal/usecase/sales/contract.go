package sales

import (
	"context"

	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
)

// Counters books and reads per-day sales counters.
type Counters interface {
	Record(ctx context.Context, day string, totalJMD float64) error
	Series(ctx context.Context, days []string) ([]domsales.Day, error)
}
