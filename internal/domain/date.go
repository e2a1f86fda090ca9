package domain

import "time"

// DateLayout is the ISO calendar-day format used for all persisted dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date at day precision in UTC. Comparing the
// results avoids the timezone drift of raw string comparison.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
