package product

import (
	"context"
	"fmt"
	"sort"

	"github.com/dbhs-alumni/merchstore/internal/db"
	"github.com/dbhs-alumni/merchstore/internal/domain"
	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// store is the consumer interface for products (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog store on Redis hashes.
type Repo struct {
	store store
}

// New creates a product repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new product. Fails with ErrAlreadyExists on ID collision.
func (r *Repo) Create(ctx context.Context, p domprod.Product) error {
	key := productKey(p.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}
	if err := r.store.HSet(ctx, key, productToHash(&p)); err != nil {
		return fmt.Errorf("hset product %s: %w", p.ID(), err)
	}
	return nil
}

// Update overwrites an existing product.
func (r *Repo) Update(ctx context.Context, p domprod.Product) error {
	key := productKey(p.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	if err := r.store.HSet(ctx, key, productToHash(&p)); err != nil {
		return fmt.Errorf("hset product %s: %w", p.ID(), err)
	}
	return nil
}

// SetActive flips only the visibility field.
func (r *Repo) SetActive(ctx context.Context, id string, active bool) error {
	key := productKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	if err := r.store.HSet(ctx, key, map[string]string{fieldActive: formatBool(active)}); err != nil {
		return fmt.Errorf("hset product %s active: %w", id, err)
	}
	return nil
}

// Upsert writes many products in one round-trip, replacing existing ones.
func (r *Repo) Upsert(ctx context.Context, products []domprod.Product) error {
	items := make([]db.HashSetItem, len(products))
	for i := range products {
		items[i] = db.HashSetItem{Key: productKey(products[i].ID()), Fields: productToHash(&products[i])}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset products: %w", err)
	}
	return nil
}

// Get returns a product by ID regardless of visibility.
func (r *Repo) Get(ctx context.Context, id string) (domprod.Product, error) {
	m, err := r.store.HGetAll(ctx, productKey(id))
	if err != nil {
		return domprod.Product{}, fmt.Errorf("hgetall product %s: %w", id, err)
	}
	if len(m) == 0 {
		return domprod.Product{}, domain.ErrProductNotFound
	}
	return productFromHash(id, m)
}

// List returns every product, newest first. Ties keep ID order.
func (r *Repo) List(ctx context.Context) ([]domprod.Product, error) {
	keys, err := r.store.Scan(ctx, productKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	if len(keys) == 0 {
		return []domprod.Product{}, nil
	}
	sort.Strings(keys)

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi products: %w", err)
	}

	products := make([]domprod.Product, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		p, err := productFromHash(idFromKey(keys[i]), m)
		if err != nil {
			return nil, fmt.Errorf("parse product %s: %w", keys[i], err)
		}
		products = append(products, p)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt() > products[j].CreatedAt()
	})
	return products, nil
}

// ListActive returns only storefront-visible products, newest first.
func (r *Repo) ListActive(ctx context.Context) ([]domprod.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domprod.Product, 0, len(all))
	for i := range all {
		if all[i].Active() {
			active = append(active, all[i])
		}
	}
	return active, nil
}

// Delete removes a product.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := productKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Key pattern: merch:product:{id}

var productPrefix = domain.KeyPrefix + "product:"

func productKey(id string) string {
	return productPrefix + id
}

func idFromKey(key string) string {
	return key[len(productPrefix):]
}
