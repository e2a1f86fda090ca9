package pricing

import (
	"math"
	"time"

	"github.com/skybook/skybook/internal/domain"
)

// Display-time surcharge and discount factors. Multipliers compound.
const (
	peakSeasonFactor   = 1.8 // December departures
	weekendFactor      = 1.1 // Saturday or Sunday departures
	earlyBookingFactor = 0.9 // booked more than 30 days out
	earlyBookingDays   = 30
)

// Calculator computes the dynamic display price. It is a pure function of
// the base price, the departure date, the traveler count and the injected
// clock; the result is never persisted on the flight.
type Calculator struct {
	now func() time.Time
}

func NewCalculator(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// Display returns round(basePrice * compound multiplier * travelers).
func (c *Calculator) Display(basePrice int64, departureDate string, travelers int) (int64, error) {
	dep, err := domain.ParseDate(departureDate)
	if err != nil {
		return 0, domain.Validationf("invalid departure date %q", departureDate)
	}

	multiplier := 1.0
	if dep.Month() == time.December {
		multiplier = peakSeasonFactor
	}
	if wd := dep.Weekday(); wd == time.Saturday || wd == time.Sunday {
		multiplier *= weekendFactor
	}
	if c.daysAhead(dep) > earlyBookingDays {
		multiplier *= earlyBookingFactor
	}

	return int64(math.Round(float64(basePrice) * multiplier * float64(travelers))), nil
}

// daysAhead counts whole calendar days between today and the departure.
func (c *Calculator) daysAhead(dep time.Time) int {
	now := c.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dep.Sub(today).Hours() / 24)
}
