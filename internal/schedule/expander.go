// Package schedule turns a recurrence definition into concrete flight
// instances, one per matching calendar day.
package schedule

import (
	"fmt"

	"github.com/skybook/skybook/internal/domain"
)

// IDGenerator supplies unique flight ids. Injected so id uniqueness does not
// depend on clock resolution.
type IDGenerator func() string

// Expand materializes the template against the schedule. It emits one flight
// per calendar day in [StartDate, EndDate] whose weekday is selected,
// copying every template field, assigning a fresh id per instance and
// attaching a copy of the schedule for traceability.
//
// A weekly or custom schedule with missing bounds or no selected weekdays is
// a validation failure, not an empty result. Recurrence "once" emits exactly
// the start date; "daily" selects all seven weekdays.
func Expand(template domain.Flight, sched domain.FlightSchedule, newID IDGenerator) ([]domain.Flight, error) {
	if sched.StartDate == "" {
		return nil, domain.Validationf("schedule start date is required")
	}
	start, err := domain.ParseDate(sched.StartDate)
	if err != nil {
		return nil, domain.Validationf("invalid schedule start date %q", sched.StartDate)
	}

	if sched.Recurrence == domain.RecurrenceOnce {
		return []domain.Flight{instance(template, sched, newID(), sched.StartDate)}, nil
	}

	if sched.EndDate == "" {
		return nil, domain.Validationf("schedule end date is required")
	}
	end, err := domain.ParseDate(sched.EndDate)
	if err != nil {
		return nil, domain.Validationf("invalid schedule end date %q", sched.EndDate)
	}
	if end.Before(start) {
		return nil, domain.Validationf("schedule end date %s precedes start date %s", sched.EndDate, sched.StartDate)
	}

	days, err := selectedDays(sched)
	if err != nil {
		return nil, err
	}

	var flights []domain.Flight
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if days[int(d.Weekday())] {
			flights = append(flights, instance(template, sched, newID(), domain.FormatDate(d)))
		}
	}
	return flights, nil
}

func selectedDays(sched domain.FlightSchedule) (map[int]bool, error) {
	days := make(map[int]bool, 7)
	if sched.Recurrence == domain.RecurrenceDaily {
		for d := 0; d < 7; d++ {
			days[d] = true
		}
		return days, nil
	}
	if len(sched.DaysOfWeek) == 0 {
		return nil, domain.Validationf("schedule has no days of week selected")
	}
	for _, d := range sched.DaysOfWeek {
		if d < 0 || d > 6 {
			return nil, domain.Validationf("day of week %d out of range 0..6", d)
		}
		days[d] = true
	}
	return days, nil
}

func instance(template domain.Flight, sched domain.FlightSchedule, id, date string) domain.Flight {
	f := template
	f.ID = id
	f.DepartureDate = date
	cp := sched
	cp.DaysOfWeek = append([]int(nil), sched.DaysOfWeek...)
	f.Schedule = &cp
	return f
}

// Duration renders the HH:mm gap between departure and arrival, rolling
// over midnight for overnight flights.
func Duration(departure, arrival string) (string, error) {
	dep, err := minutesOfDay(departure)
	if err != nil {
		return "", err
	}
	arr, err := minutesOfDay(arrival)
	if err != nil {
		return "", err
	}
	if arr < dep {
		arr += 24 * 60
	}
	diff := arr - dep
	return fmt.Sprintf("%dh %dm", diff/60, diff%60), nil
}

func minutesOfDay(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, domain.Validationf("invalid time of day %q", clock)
	}
	return h*60 + m, nil
}
