package sales

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	domsales "github.com/dbhs-alumni/merchstore/internal/domain/sales"
)

// store is the consumer interface for sales counters (ISP).
type store interface {
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps per-day revenue (in cents) and order counters (INCRBY with TTL).
type Store struct {
	store     store
	retention time.Duration
}

// New creates a sales store. Daily counters expire after retention.
func New(s store, retention time.Duration) *Store {
	return &Store{store: s, retention: retention}
}

// Record books one order of totalJMD on day (sales.DayLayout).
func (s *Store) Record(ctx context.Context, day string, totalJMD float64) error {
	if err := s.incr(ctx, revenueKey(day), domsales.ToCents(totalJMD)); err != nil {
		return err
	}
	return s.incr(ctx, ordersKey(day), 1)
}

func (s *Store) incr(ctx context.Context, key string, val int64) error {
	if _, err := s.store.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("sales INCRBY %s: %w", key, err)
	}
	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, s.retention, true); err != nil {
		return fmt.Errorf("sales EXPIRE %s: %w", key, err)
	}
	return nil
}

// Series returns one snapshot per requested day, in order. Days without
// counters read as zero.
func (s *Store) Series(ctx context.Context, days []string) ([]domsales.Day, error) {
	if len(days) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, 2*len(days))
	for _, d := range days {
		keys = append(keys, revenueKey(d), ordersKey(d))
	}
	vals, err := s.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("sales MGET: %w", err)
	}
	if len(vals) != len(keys) {
		return nil, fmt.Errorf("sales MGET: got %d values for %d keys", len(vals), len(keys))
	}

	out := make([]domsales.Day, len(days))
	for i, d := range days {
		cents, err := parseCounter(vals[2*i])
		if err != nil {
			return nil, fmt.Errorf("sales %s revenue: %w", d, err)
		}
		orders, err := parseCounter(vals[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("sales %s orders: %w", d, err)
		}
		out[i] = domsales.NewDay(d, domsales.FromCents(cents), orders)
	}
	return out, nil
}

func parseCounter(b []byte) (int64, error) {
	if b == nil {
		return 0, nil
	}
	return strconv.ParseInt(string(b), 10, 64)
}

// Key patterns: merch:sales:daily:{date}, merch:sales:orders:{date}

func revenueKey(day string) string { return domain.KeyPrefix + "sales:daily:" + day }

func ordersKey(day string) string { return domain.KeyPrefix + "sales:orders:" + day }
