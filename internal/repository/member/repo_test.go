package member

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
)

type mockStore struct {
	sets   map[string]map[string]bool
	hashes map[string]map[string]string
	err    error
}

func newMockStore() *mockStore {
	return &mockStore{sets: map[string]map[string]bool{}, hashes: map[string]map[string]string{}}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.hashes[key] = fields
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hashes[key], m.err
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	if m.err != nil {
		return m.err
	}
	if m.sets[key] == nil {
		m.sets[key] = map[string]bool{}
	}
	for _, v := range members {
		m.sets[key][v] = true
	}
	return nil
}

func (m *mockStore) SRem(_ context.Context, key string, members ...string) error {
	for _, v := range members {
		delete(m.sets[key], v)
	}
	return m.err
}

func (m *mockStore) SIsMember(_ context.Context, key, member string) (bool, error) {
	return m.sets[key][member], m.err
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]string, 0, len(m.sets[key]))
	for v := range m.sets[key] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func TestAlumni_NormalizesEmails(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()

	if err := repo.AddAlumni(ctx, "  Grad@Example.ORG ", "", "second@example.org"); err != nil {
		t.Fatalf("AddAlumni: %v", err)
	}
	if len(ms.sets["merch:alumni"]) != 2 {
		t.Errorf("alumni set = %v", ms.sets["merch:alumni"])
	}
	ok, err := repo.IsAlumni(ctx, "GRAD@example.org")
	if err != nil || !ok {
		t.Errorf("IsAlumni = %v, %v", ok, err)
	}
}

func TestAdmins(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()

	_ = repo.GrantAdmin(ctx, "Boss@example.org")
	if ok, _ := repo.IsAdmin(ctx, "boss@example.org"); !ok {
		t.Error("expected admin")
	}
	_ = repo.RevokeAdmin(ctx, "boss@example.org")
	if ok, _ := repo.IsAdmin(ctx, "boss@example.org"); ok {
		t.Error("expected admin revoked")
	}
}

func TestTouch_KeepsCreatedAt(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()

	first, err := repo.Touch(ctx, "Grad@Example.org", 100)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	second, _ := repo.Touch(ctx, "grad@example.org", 250)

	want := dommember.Member{Email: "grad@example.org", CreatedAt: 100, LastSignIn: 250}
	if !reflect.DeepEqual(second, want) {
		t.Errorf("second touch = %+v, want %+v", second, want)
	}
	if first.CreatedAt != 100 {
		t.Errorf("first.CreatedAt = %d", first.CreatedAt)
	}
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	ms := newMockStore()
	ms.err = errors.New("conn reset")
	repo := New(ms)

	if _, err := repo.IsAdmin(context.Background(), "a@b.org"); !errors.Is(err, ms.err) {
		t.Errorf("IsAdmin error = %v", err)
	}
	if _, err := repo.Touch(context.Background(), "a@b.org", 1); !errors.Is(err, ms.err) {
		t.Errorf("Touch error = %v", err)
	}
}

func TestWishlist(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)
	ctx := context.Background()

	for _, id := range []string{"p-mug", "p-cap", "p-mug"} {
		if err := repo.Wish(ctx, "Grad@Example.org", id); err != nil {
			t.Fatalf("Wish(%s): %v", id, err)
		}
	}
	ids, err := repo.Wishlist(ctx, "grad@example.org")
	if err != nil {
		t.Fatalf("Wishlist: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"p-cap", "p-mug"}) {
		t.Errorf("Wishlist = %v", ids)
	}
	if len(ms.sets["merch:wishlist:grad@example.org"]) != 2 {
		t.Errorf("wishlist key not normalized: %v", ms.sets)
	}

	if err := repo.Unwish(ctx, "grad@example.org", "p-cap"); err != nil {
		t.Fatalf("Unwish: %v", err)
	}
	if ok, _ := repo.Wished(ctx, "grad@example.org", "p-cap"); ok {
		t.Error("p-cap should be removed")
	}
	if ok, _ := repo.Wished(ctx, "grad@example.org", "p-mug"); !ok {
		t.Error("p-mug should remain")
	}
}

func TestWishlist_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.err = errors.New("conn reset")
	if _, err := New(ms).Wishlist(context.Background(), "grad@example.org"); !errors.Is(err, ms.err) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
