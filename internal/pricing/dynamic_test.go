package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(date string) func() time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return t }
}

func TestDisplay_noSurcharges(t *testing.T) {
	// Wednesday in June, 14 days ahead
	calc := NewCalculator(fixedClock("2026-06-03"))

	price, err := calc.Display(10000, "2026-06-17", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), price)
}

func TestDisplay_peakSeason(t *testing.T) {
	// Tuesday in December, 7 days ahead
	calc := NewCalculator(fixedClock("2026-12-01"))

	price, err := calc.Display(10000, "2026-12-08", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(18000), price)
}

func TestDisplay_weekend(t *testing.T) {
	// 2026-06-13 is a Saturday
	calc := NewCalculator(fixedClock("2026-06-03"))

	price, err := calc.Display(10000, "2026-06-13", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(11000), price)
}

func TestDisplay_earlyBooking(t *testing.T) {
	// 45 days ahead, Thursday in July
	calc := NewCalculator(fixedClock("2026-06-01"))

	price, err := calc.Display(10000, "2026-07-16", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(9000), price)
}

func TestDisplay_factorsCompound(t *testing.T) {
	// 2026-12-05 is a Saturday in December, more than 30 days out:
	// 10000 * 1.8 * 1.1 * 0.9 = 17820
	calc := NewCalculator(fixedClock("2026-10-01"))

	price, err := calc.Display(10000, "2026-12-05", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(17820), price)
}

func TestDisplay_scalesWithTravelers(t *testing.T) {
	calc := NewCalculator(fixedClock("2026-06-03"))

	for _, travelers := range []int{1, 2, 5} {
		price, err := calc.Display(10000, "2026-06-17", travelers)
		assert.NoError(t, err)
		assert.Equal(t, int64(10000*travelers), price)
	}
}

func TestDisplay_exactly30DaysIsNotEarly(t *testing.T) {
	calc := NewCalculator(fixedClock("2026-06-01"))

	// 2026-07-01 is exactly 30 days out, a Wednesday
	price, err := calc.Display(10000, "2026-07-01", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), price)
}

func TestDisplay_rejectsBadDate(t *testing.T) {
	calc := NewCalculator(nil)

	_, err := calc.Display(10000, "17-06-2026", 1)
	assert.Error(t, err)
}
