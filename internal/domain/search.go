package domain

type TripType string

const (
	TripOneWay    TripType = "oneWay"
	TripRoundTrip TripType = "roundTrip"
)

// SearchMode selects one of the three query modes over the inventory.
type SearchMode string

const (
	// SearchExactDate matches departureDate exactly.
	SearchExactDate SearchMode = "exactDate"
	// SearchFromDate matches departureDate on or after the requested date.
	// This is the default mode on a fresh search.
	SearchFromDate SearchMode = "fromDate"
	// SearchAllDates ignores the date entirely.
	SearchAllDates SearchMode = "allDates"
)

// SearchParams is ephemeral, held only for the duration of a search or
// selection session.
type SearchParams struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate,omitempty"`
	Travelers     int      `json:"travelers"`
	TripType      TripType `json:"tripType"`
}
