package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dbhs-alumni/merchstore/internal/db"
	"github.com/dbhs-alumni/merchstore/internal/domain"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
)

// store is the consumer interface for orders (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo stores order headers as hashes and their items as a JSON blob.
type Repo struct {
	store store
}

// New creates an order repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert writes the order header.
func (r *Repo) Insert(ctx context.Context, o domorder.Order) error {
	if err := r.store.HSet(ctx, orderKey(o.ID()), orderToHash(&o)); err != nil {
		return fmt.Errorf("hset order %s: %w", o.ID(), err)
	}
	return nil
}

// InsertItems writes the item snapshot of an already inserted order.
func (r *Repo) InsertItems(ctx context.Context, orderID string, items []domorder.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	if err := r.store.Set(ctx, itemsKey(orderID), data); err != nil {
		return fmt.Errorf("set order items %s: %w", orderID, err)
	}
	return nil
}

// Remove deletes an order and its items. Used to undo a partial checkout.
func (r *Repo) Remove(ctx context.Context, orderID string) error {
	return errors.Join(
		r.store.Del(ctx, itemsKey(orderID)),
		r.store.Del(ctx, orderKey(orderID)),
	)
}

// UpdateStatus changes only the status field.
func (r *Repo) UpdateStatus(ctx context.Context, id string, status domorder.Status) error {
	key := orderKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	if err := r.store.HSet(ctx, key, map[string]string{fieldStatus: string(status)}); err != nil {
		return fmt.Errorf("hset order %s status: %w", id, err)
	}
	return nil
}

// Get returns an order with its items.
func (r *Repo) Get(ctx context.Context, id string) (domorder.Order, error) {
	m, err := r.store.HGetAll(ctx, orderKey(id))
	if err != nil {
		return domorder.Order{}, fmt.Errorf("hgetall order %s: %w", id, err)
	}
	if len(m) == 0 {
		return domorder.Order{}, domain.ErrOrderNotFound
	}
	o, err := orderFromHash(id, m)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("parse order %s: %w", id, err)
	}

	raw, err := r.store.Get(ctx, itemsKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return o, nil
		}
		return domorder.Order{}, fmt.Errorf("get order items %s: %w", id, err)
	}
	var items []domorder.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return domorder.Order{}, fmt.Errorf("unmarshal order items %s: %w", id, err)
	}
	return o.WithItems(items), nil
}

// List returns order headers newest first, capped at limit (0 = no cap).
func (r *Repo) List(ctx context.Context, limit int) ([]domorder.Order, error) {
	keys, err := r.store.Scan(ctx, orderKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	if len(keys) == 0 {
		return []domorder.Order{}, nil
	}
	sort.Strings(keys)

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi orders: %w", err)
	}

	orders := make([]domorder.Order, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		o, err := orderFromHash(keys[i][len(orderPrefix):], m)
		if err != nil {
			return nil, fmt.Errorf("parse order %s: %w", keys[i], err)
		}
		orders = append(orders, o)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt() > orders[j].CreatedAt()
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

const (
	fieldEmail     = "member_email"
	fieldSubtotal  = "subtotal_jmd"
	fieldShipping  = "shipping_jmd"
	fieldTotal     = "total_jmd"
	fieldStatus    = "status"
	fieldCreatedAt = "created_at"
)

func orderToHash(o *domorder.Order) map[string]string {
	t := o.Totals()
	return map[string]string{
		fieldEmail:     o.MemberEmail(),
		fieldSubtotal:  strconv.FormatFloat(t.Subtotal, 'f', -1, 64),
		fieldShipping:  strconv.FormatFloat(t.Shipping, 'f', -1, 64),
		fieldTotal:     strconv.FormatFloat(t.Total, 'f', -1, 64),
		fieldStatus:    string(o.Status()),
		fieldCreatedAt: strconv.FormatInt(o.CreatedAt(), 10),
	}
}

func orderFromHash(id string, m map[string]string) (domorder.Order, error) {
	var t domorder.Totals
	var err error
	if t.Subtotal, err = strconv.ParseFloat(m[fieldSubtotal], 64); err != nil {
		return domorder.Order{}, fmt.Errorf("invalid %s: %w", fieldSubtotal, err)
	}
	if t.Shipping, err = strconv.ParseFloat(m[fieldShipping], 64); err != nil {
		return domorder.Order{}, fmt.Errorf("invalid %s: %w", fieldShipping, err)
	}
	if t.Total, err = strconv.ParseFloat(m[fieldTotal], 64); err != nil {
		return domorder.Order{}, fmt.Errorf("invalid %s: %w", fieldTotal, err)
	}
	createdAt, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("invalid %s: %w", fieldCreatedAt, err)
	}
	return domorder.Reconstruct(id, m[fieldEmail], t, domorder.Status(m[fieldStatus]), createdAt, nil), nil
}

// Key patterns: merch:order:{id}, merch:order_items:{id}

var orderPrefix = domain.KeyPrefix + "order:"

func orderKey(id string) string { return orderPrefix + id }

func itemsKey(id string) string { return domain.KeyPrefix + "order_items:" + id }
