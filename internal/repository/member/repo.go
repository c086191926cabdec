package member

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
)

// store is the consumer interface for member records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo keeps the alumni records, the admin allow-list, member accounts and
// wishlists.
type Repo struct {
	store store
}

// New creates a member repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IsAlumni reports whether email is in the alumni records.
func (r *Repo) IsAlumni(ctx context.Context, email string) (bool, error) {
	ok, err := r.store.SIsMember(ctx, alumniKey, dommember.NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("check alumni: %w", err)
	}
	return ok, nil
}

// AddAlumni adds addresses to the alumni records.
func (r *Repo) AddAlumni(ctx context.Context, emails ...string) error {
	if err := r.store.SAdd(ctx, alumniKey, normalizeAll(emails)...); err != nil {
		return fmt.Errorf("add alumni: %w", err)
	}
	return nil
}

// IsAdmin reports whether email is on the admin allow-list.
func (r *Repo) IsAdmin(ctx context.Context, email string) (bool, error) {
	ok, err := r.store.SIsMember(ctx, adminsKey, dommember.NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return ok, nil
}

// GrantAdmin adds addresses to the admin allow-list.
func (r *Repo) GrantAdmin(ctx context.Context, emails ...string) error {
	if err := r.store.SAdd(ctx, adminsKey, normalizeAll(emails)...); err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	return nil
}

// RevokeAdmin removes addresses from the admin allow-list.
func (r *Repo) RevokeAdmin(ctx context.Context, emails ...string) error {
	if err := r.store.SRem(ctx, adminsKey, normalizeAll(emails)...); err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}
	return nil
}

// Touch upserts the member account and records a sign-in at now (unix millis).
func (r *Repo) Touch(ctx context.Context, email string, now int64) (dommember.Member, error) {
	email = dommember.NormalizeEmail(email)
	key := memberKey(email)

	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dommember.Member{}, fmt.Errorf("hgetall member %s: %w", email, err)
	}
	createdAt := now
	if v, ok := m["created_at"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			createdAt = parsed
		}
	}

	fields := map[string]string{
		"email":        email,
		"created_at":   strconv.FormatInt(createdAt, 10),
		"last_sign_in": strconv.FormatInt(now, 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return dommember.Member{}, fmt.Errorf("hset member %s: %w", email, err)
	}
	return dommember.Member{Email: email, CreatedAt: createdAt, LastSignIn: now}, nil
}

// Wishlist returns the product ids the member saved, in no particular order.
func (r *Repo) Wishlist(ctx context.Context, email string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, wishlistKey(email))
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return ids, nil
}

// Wish saves productID on the member's wishlist.
func (r *Repo) Wish(ctx context.Context, email, productID string) error {
	if err := r.store.SAdd(ctx, wishlistKey(email), productID); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

// Unwish drops productID from the member's wishlist.
func (r *Repo) Unwish(ctx context.Context, email, productID string) error {
	if err := r.store.SRem(ctx, wishlistKey(email), productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

// Wished reports whether productID is on the member's wishlist.
func (r *Repo) Wished(ctx context.Context, email, productID string) (bool, error) {
	ok, err := r.store.SIsMember(ctx, wishlistKey(email), productID)
	if err != nil {
		return false, fmt.Errorf("check wishlist: %w", err)
	}
	return ok, nil
}

func normalizeAll(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if n := dommember.NormalizeEmail(e); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Key patterns: merch:alumni (set), merch:admins (set), merch:member:{email},
// merch:wishlist:{email} (set)

var (
	alumniKey = domain.KeyPrefix + "alumni"
	adminsKey = domain.KeyPrefix + "admins"
)

func memberKey(email string) string {
	return domain.KeyPrefix + "member:" + email
}

func wishlistKey(email string) string {
	return domain.KeyPrefix + "wishlist:" + dommember.NormalizeEmail(email)
}
