package sales

import (
	"context"
	"fmt"
	"time"

	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
)

// Report window limits, in days.
const (
	DefaultDays = 7
	MaxDays     = 90
)

// Service books placed orders into daily counters and reads them back.
type Service struct {
	counters Counters
	now      func() time.Time
}

// New creates a sales service.
func New(counters Counters) *Service {
	return &Service{counters: counters, now: time.Now}
}

// Record books an order total on the day it was placed.
func (s *Service) Record(ctx context.Context, at time.Time, totalJMD float64) error {
	if err := s.counters.Record(ctx, domsales.DayKey(at), totalJMD); err != nil {
		return fmt.Errorf("record sale: %w", err)
	}
	return nil
}

// LastDays returns a contiguous series of the last n days ending today,
// oldest first. n <= 0 means DefaultDays; larger than MaxDays is capped.
func (s *Service) LastDays(ctx context.Context, n int) ([]domsales.Day, error) {
	if n <= 0 {
		n = DefaultDays
	}
	if n > MaxDays {
		n = MaxDays
	}
	days, err := s.counters.Series(ctx, domsales.LastDays(s.now(), n))
	if err != nil {
		return nil, fmt.Errorf("read sales series: %w", err)
	}
	return days, nil
}
