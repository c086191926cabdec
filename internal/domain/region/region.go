// Package region models the storefront versions (currency, suppliers) a
// shopper can browse and the best-effort heuristics that pick one.
package region

import (
	"strings"

	"github.com/dbhs-alumni/merchstore/internal/domain"
)

// Region identifies a storefront version.
type Region string

// Supported regions.
const (
	Jamaica Region = "jamaica"
	US      Region = "us"
	UK      Region = "uk"

	Default = Jamaica
)

// Info is the display configuration of a region. FX converts from JMD.
type Info struct {
	Label     string
	Symbol    string
	Locale    string
	FX        float64
	Suppliers string
}

var regions = map[Region]Info{
	Jamaica: {Label: "Jamaica", Symbol: "JMD $", Locale: "en-JM", FX: 1, Suppliers: "Jamaica supplier network"},
	US:      {Label: "United States", Symbol: "US $", Locale: "en-US", FX: 1.0 / 155, Suppliers: "United States supplier network"},
	UK:      {Label: "United Kingdom", Symbol: "GBP ", Locale: "en-GB", FX: 1.0 / 198, Suppliers: "United Kingdom supplier network"},
}

// All lists the supported regions in display order.
func All() []Region { return []Region{Jamaica, US, UK} }

// Parse validates a region name (case-insensitive).
func Parse(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := regions[r]; !ok {
		return "", domain.NewValidationError("region", "must be one of jamaica, us, uk")
	}
	return r, nil
}

// IsValid reports whether r is a supported region.
func (r Region) IsValid() bool {
	_, ok := regions[r]
	return ok
}

// Info returns the display configuration, falling back to Default.
func (r Region) Info() Info {
	if info, ok := regions[r]; ok {
		return info
	}
	return regions[Default]
}

// Convert turns a JMD amount into the region's currency.
func (r Region) Convert(jmd float64) float64 {
	return jmd * r.Info().FX
}

// Detect guesses a region from a BCP 47 locale ("en-GB") and an IANA
// timezone ("Europe/London"). Unknown inputs map to Default.
func Detect(locale, timezone string) Region {
	country := ""
	if i := strings.LastIndex(locale, "-"); i >= 0 {
		country = strings.ToUpper(locale[i+1:])
	}

	switch {
	case country == "JM" || strings.Contains(timezone, "Jamaica"):
		return Jamaica
	case country == "GB" || strings.Contains(timezone, "London"):
		return UK
	case country == "US":
		return US
	case strings.HasPrefix(timezone, "America/"):
		return US
	}
	return Default
}

type box struct {
	minLat, maxLat, minLon, maxLon float64
}

func (b box) contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon
}

// Checked in order: Jamaica sits inside the US longitude span.
var bounds = []struct {
	region Region
	box    box
}{
	{Jamaica, box{17.5, 18.7, -78.5, -76.1}},
	{UK, box{49.8, 60.9, -8.7, 1.8}},
	// contiguous states plus Alaska and Hawaii
	{US, box{18.8, 71.6, -171.8, -66.9}},
}

// FromCoords maps a coordinate to a region by bounding box.
func FromCoords(lat, lon float64) (Region, bool) {
	for _, b := range bounds {
		if b.box.contains(lat, lon) {
			return b.region, true
		}
	}
	return "", false
}
