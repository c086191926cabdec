package sales

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type mockStore struct {
	counters map[string]int64
	ttls     map[string]time.Duration
	expireNX []bool
	incrErr  error
}

func newMockStore() *mockStore {
	return &mockStore{counters: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (m *mockStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := m.counters[k]; ok {
			out[i] = []byte(strconv.FormatInt(v, 10))
		}
	}
	return out, nil
}

func (m *mockStore) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	if m.incrErr != nil {
		return 0, m.incrErr
	}
	m.counters[key] += val
	return m.counters[key], nil
}

func (m *mockStore) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	m.ttls[key] = ttl
	m.expireNX = append(m.expireNX, nx)
	return nil
}

func TestRecord(t *testing.T) {
	ms := newMockStore()
	s := New(ms, 90*24*time.Hour)
	ctx := context.Background()

	if err := s.Record(ctx, "2026-03-02", 4550.5); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, "2026-03-02", 950); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if got := ms.counters["merch:sales:daily:2026-03-02"]; got != 550050 {
		t.Errorf("revenue cents = %d", got)
	}
	if got := ms.counters["merch:sales:orders:2026-03-02"]; got != 2 {
		t.Errorf("orders = %d", got)
	}
	if ms.ttls["merch:sales:daily:2026-03-02"] != 90*24*time.Hour {
		t.Errorf("ttl = %v", ms.ttls["merch:sales:daily:2026-03-02"])
	}
	for i, nx := range ms.expireNX {
		if !nx {
			t.Errorf("expire call %d without NX", i)
		}
	}
}

func TestRecord_Error(t *testing.T) {
	ms := newMockStore()
	ms.incrErr = errors.New("conn reset")
	s := New(ms, time.Hour)
	if err := s.Record(context.Background(), "2026-03-02", 1); !errors.Is(err, ms.incrErr) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestSeries_FillsGaps(t *testing.T) {
	ms := newMockStore()
	ms.counters["merch:sales:daily:2026-03-01"] = 1575000
	ms.counters["merch:sales:orders:2026-03-01"] = 3
	s := New(ms, time.Hour)

	days, err := s.Series(context.Background(), []string{"2026-02-28", "2026-03-01"})
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Revenue() != 0 || days[0].Orders() != 0 {
		t.Errorf("gap day = %+v", days[0])
	}
	if days[1].Date() != "2026-03-01" || days[1].Revenue() != 15750 || days[1].Orders() != 3 {
		t.Errorf("day = %+v", days[1])
	}
}
