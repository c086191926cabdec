package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/db"
	"github.com/dbhs-alumni/merchstore/internal/domain"
	domcart "github.com/dbhs-alumni/merchstore/internal/domain/cart"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
)

// store is the consumer interface for per-member cart state (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store persists each member's cart and region preference.
type Store struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cart store. Carts expire ttl after their last change.
func New(s store, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{store: s, ttl: ttl, logger: logger}
}

// Load returns the member's cart. A missing or unreadable cart is empty.
func (s *Store) Load(ctx context.Context, email string) (domcart.Cart, error) {
	key := cartKey(email)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcart.New(nil), nil
		}
		return domcart.Cart{}, fmt.Errorf("get cart: %w", err)
	}

	var qty map[string]int
	if err := json.Unmarshal(data, &qty); err != nil {
		s.logger.Warn("Failed to parse stored cart", zap.String("key", key), zap.Error(err))
		return domcart.New(nil), nil
	}
	return domcart.New(qty), nil
}

// Save writes the cart, refreshing its expiry. An empty cart is deleted.
func (s *Store) Save(ctx context.Context, email string, c domcart.Cart) error {
	if c.IsEmpty() {
		return s.Clear(ctx, email)
	}
	data, err := json.Marshal(c.Quantities())
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.SetWithTTL(ctx, cartKey(email), data, s.ttl); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return nil
}

// Clear empties the member's cart.
func (s *Store) Clear(ctx context.Context, email string) error {
	if err := s.store.Del(ctx, cartKey(email)); err != nil {
		return fmt.Errorf("del cart: %w", err)
	}
	return nil
}

// LoadRegion returns the saved region preference. ok is false when none is
// stored or the stored value is no longer supported.
func (s *Store) LoadRegion(ctx context.Context, email string) (region.Region, bool, error) {
	data, err := s.store.Get(ctx, regionKey(email))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get region: %w", err)
	}
	r := region.Region(data)
	if !r.IsValid() {
		return "", false, nil
	}
	return r, true, nil
}

// SaveRegion stores the member's region preference.
func (s *Store) SaveRegion(ctx context.Context, email string, r region.Region) error {
	if err := s.store.Set(ctx, regionKey(email), []byte(r)); err != nil {
		return fmt.Errorf("set region: %w", err)
	}
	return nil
}

// Key patterns: merch:cart:{email}, merch:region:{email}

func cartKey(email string) string { return domain.KeyPrefix + "cart:" + email }

func regionKey(email string) string { return domain.KeyPrefix + "region:" + email }
