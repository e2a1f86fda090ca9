package domain

// Recurrence describes how a flight schedule repeats.
type Recurrence string

const (
	RecurrenceOnce   Recurrence = "once"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceCustom Recurrence = "custom"
)

// FlightSchedule is a recurrence template, never an individual flight.
// DaysOfWeek uses 0=Sunday..6=Saturday.
type FlightSchedule struct {
	Recurrence  Recurrence `json:"recurrence"`
	DaysOfWeek  []int      `json:"daysOfWeek,omitempty"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate,omitempty"`
	Occurrences int        `json:"occurrences,omitempty"`
}

// Flight is one materialized instance of service on a route, pinned to a
// single calendar day. Created in bulk by the schedule expander, mutated
// only by admin availability toggles or deletion.
type Flight struct {
	ID            string          `json:"id"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	RouteID       string          `json:"routeId"`
	DepartureDate string          `json:"departureDate"`
	ReturnDate    string          `json:"returnDate,omitempty"`
	BasePrice     int64           `json:"basePrice"`
	Airline       string          `json:"airline"`
	FlightNumber  string          `json:"flightNumber"`
	DepartureTime string          `json:"departureTime"`
	ArrivalTime   string          `json:"arrivalTime"`
	Duration      string          `json:"duration"`
	Available     bool            `json:"available"`
	Schedule      *FlightSchedule `json:"schedule,omitempty"`
}
