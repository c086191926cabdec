// Package sales holds daily revenue snapshots used by the admin dashboard.
package sales

import (
	"math"
	"time"
)

// DayLayout formats the per-day counter keys.
const DayLayout = "2006-01-02"

// Day is the revenue booked on one calendar day (UTC), in JMD.
type Day struct {
	date    string
	revenue float64
	orders  int64
}

// NewDay creates a daily snapshot.
func NewDay(date string, revenue float64, orders int64) Day {
	return Day{date: date, revenue: revenue, orders: orders}
}

// Date returns the day in DayLayout.
func (d Day) Date() string { return d.date }

// Revenue returns the day's sales total.
func (d Day) Revenue() float64 { return d.revenue }

// Orders returns the number of orders placed that day.
func (d Day) Orders() int64 { return d.orders }

// DayKey formats t as a counter date.
func DayKey(t time.Time) string { return t.UTC().Format(DayLayout) }

// LastDays returns n day keys ending at now, oldest first.
func LastDays(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = DayKey(now.AddDate(0, 0, -i))
	}
	return out
}

// ToCents converts a JMD amount for integer counters.
func ToCents(v float64) int64 { return int64(math.Round(v * 100)) }

// FromCents converts a counter back to JMD.
func FromCents(c int64) float64 { return float64(c) / 100 }
