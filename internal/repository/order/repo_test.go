package order

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dbhs-alumni/merchstore/internal/db"
	"github.com/dbhs-alumni/merchstore/internal/domain"
	"github.com/dbhs-alumni/merchstore/internal/domain/cart"
	domorder "github.com/dbhs-alumni/merchstore/internal/domain/order"
	"github.com/dbhs-alumni/merchstore/internal/domain/product"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hashes map[string]map[string]string
	blobs  map[string][]byte
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{hashes: map[string]map[string]string{}, blobs: map[string][]byte{}}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hashes[key], nil
}

func (m *mockStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *mockStore) Scan(_ context.Context, _ string) ([]string, error) {
	var keys []string
	for k := range m.hashes {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.blobs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return b, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.blobs[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.hashes, key)
	delete(m.blobs, key)
	return nil
}

func testOrder(t *testing.T, id string, createdAt int64) domorder.Order {
	t.Helper()
	lines := []cart.Line{{
		Product: product.Reconstruct("mug", product.Attributes{Name: "Alumni Mug", Code: "AM", Price: 1800}, 0),
		Qty:     2,
	}}
	o, err := domorder.New(id, "grad@example.org", lines, 950, createdAt)
	if err != nil {
		t.Fatalf("testOrder: %v", err)
	}
	return o
}

func TestInsertAndGet(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()
	o := testOrder(t, "ord-1", 1000)

	if err := repo.Insert(ctx, o); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.InsertItems(ctx, o.ID(), o.Items()); err != nil {
		t.Fatalf("InsertItems: %v", err)
	}
	if ms.hashes["merch:order:ord-1"]["total_jmd"] != "4550" {
		t.Errorf("unexpected hash: %v", ms.hashes["merch:order:ord-1"])
	}

	got, err := repo.Get(ctx, "ord-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, o) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, o)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()
	_ = repo.Insert(ctx, testOrder(t, "ord-1", 1000))

	if err := repo.UpdateStatus(ctx, "ord-1", domorder.StatusProcessing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if ms.hashes["merch:order:ord-1"]["status"] != "processing" {
		t.Errorf("status = %q", ms.hashes["merch:order:ord-1"]["status"])
	}
	if err := repo.UpdateStatus(ctx, "ghost", domorder.StatusNew); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		_ = repo.Insert(ctx, testOrder(t, id, int64(100*(i+1))))
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "c" || got[1].ID() != "b" {
		t.Errorf("List = %+v", got)
	}
}

func TestRemove(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()
	o := testOrder(t, "ord-1", 1)
	_ = repo.Insert(ctx, o)
	_ = repo.InsertItems(ctx, o.ID(), o.Items())

	if err := repo.Remove(ctx, "ord-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(ms.hashes) != 0 || len(ms.blobs) != 0 {
		t.Errorf("leftovers: %v %v", ms.hashes, ms.blobs)
	}
}
