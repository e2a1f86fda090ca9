// Package pricing implements the route pricing model: the per-date seasonal
// multiplier calendar and the display-time dynamic price calculation.
package pricing

import (
	"math"

	"github.com/skybook/skybook/internal/domain"
)

// Valid multiplier range. The upper bound is a guard against nonsensical
// numeric entry; practical seasonal use sits between 0.5 and 2.0.
const (
	MultiplierMax = 10.0
)

// Effective returns the route's effective base price for a calendar date:
// basePrice * (priceMultipliers[date] ?? 1.0), rounded to a whole unit.
func Effective(route domain.Route, date string) int64 {
	m, ok := route.PriceMultipliers[date]
	if !ok {
		m = 1.0
	}
	return int64(math.Round(float64(route.BasePrice) * m))
}

// ValidateMultiplier rejects zero, negative and absurdly large multipliers.
func ValidateMultiplier(m float64) error {
	if m <= 0 || m > MultiplierMax {
		return domain.Validationf("multiplier must be in (0, %g], got %g", MultiplierMax, m)
	}
	return nil
}

// ApplyRange assigns the multiplier to every day in [start, end] inclusive,
// overwriting previous values for those dates. It returns a fresh calendar
// and never mutates the route's own map.
func ApplyRange(route domain.Route, start, end string, multiplier float64) (map[string]float64, error) {
	if err := ValidateMultiplier(multiplier); err != nil {
		return nil, err
	}
	from, err := domain.ParseDate(start)
	if err != nil {
		return nil, domain.Validationf("invalid start date %q", start)
	}
	to, err := domain.ParseDate(end)
	if err != nil {
		return nil, domain.Validationf("invalid end date %q", end)
	}
	if to.Before(from) {
		return nil, domain.Validationf("end date %s precedes start date %s", end, start)
	}

	out := make(map[string]float64, len(route.PriceMultipliers))
	for k, v := range route.PriceMultipliers {
		out[k] = v
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out[domain.FormatDate(d)] = multiplier
	}
	return out, nil
}

// SetMultiplier assigns a single date's multiplier, returning a fresh
// calendar.
func SetMultiplier(route domain.Route, date string, multiplier float64) (map[string]float64, error) {
	return ApplyRange(route, date, date, multiplier)
}
