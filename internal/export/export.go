package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/repository"
)

// Exporter renders the collections as downloadable CSV or pretty JSON.
type Exporter struct {
	users    repository.UserRepository
	routes   repository.RouteRepository
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	entries  repository.FinanceRepository
}

func NewExporter(users repository.UserRepository, routes repository.RouteRepository, flights repository.FlightRepository, bookings repository.BookingRepository, entries repository.FinanceRepository) *Exporter {
	return &Exporter{
		users:    users,
		routes:   routes,
		flights:  flights,
		bookings: bookings,
		entries:  entries,
	}
}

func (e *Exporter) BookingsCSV(ctx context.Context) (string, error) {
	bookings, err := e.bookings.List(ctx)
	if err != nil {
		return "", err
	}
	rows := [][]string{{
		"id", "bookingCode", "userName", "userEmail", "flightId", "route",
		"departureDate", "returnDate", "travelers", "totalPrice",
		"bookingStatus", "paymentStatus",
	}}
	for _, b := range bookings {
		rows = append(rows, []string{
			b.ID, b.BookingCode, b.UserName, b.UserEmail, b.Flights.String(),
			b.Route, b.DepartureDate, b.ReturnDate,
			fmt.Sprintf("%d", b.Travelers), fmt.Sprintf("%d", b.TotalPrice),
			string(b.BookingStatus), string(b.PaymentStatus),
		})
	}
	return writeCSV(rows), nil
}

func (e *Exporter) FlightsCSV(ctx context.Context) (string, error) {
	flights, err := e.flights.List(ctx)
	if err != nil {
		return "", err
	}
	rows := [][]string{{
		"id", "origin", "destination", "routeId", "departureDate",
		"basePrice", "airline", "flightNumber", "departureTime",
		"arrivalTime", "duration", "available",
	}}
	for _, f := range flights {
		rows = append(rows, []string{
			f.ID, f.Origin, f.Destination, f.RouteID, f.DepartureDate,
			fmt.Sprintf("%d", f.BasePrice), f.Airline, f.FlightNumber,
			f.DepartureTime, f.ArrivalTime, f.Duration,
			fmt.Sprintf("%t", f.Available),
		})
	}
	return writeCSV(rows), nil
}

func (e *Exporter) FinanceCSV(ctx context.Context) (string, error) {
	entries, err := e.entries.List(ctx)
	if err != nil {
		return "", err
	}
	rows := [][]string{{"id", "type", "refId", "description", "amount", "date", "category"}}
	for _, en := range entries {
		rows = append(rows, []string{
			en.ID, string(en.Type), en.RefID, en.Description,
			fmt.Sprintf("%d", en.Amount), en.Date, string(en.Category),
		})
	}
	return writeCSV(rows), nil
}

// Snapshot bundles every collection into one pretty-printed JSON document.
func (e *Exporter) Snapshot(ctx context.Context) ([]byte, error) {
	users, err := e.users.List(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := e.routes.List(ctx)
	if err != nil {
		return nil, err
	}
	flights, err := e.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := e.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := e.entries.List(ctx)
	if err != nil {
		return nil, err
	}

	doc := struct {
		Users    []domain.User         `json:"users"`
		Routes   []domain.Route        `json:"routes"`
		Flights  []domain.Flight       `json:"flights"`
		Bookings []domain.Booking      `json:"bookings"`
		Expenses []domain.FinanceEntry `json:"expenses"`
	}{users, routes, flights, bookings, entries}

	return json.MarshalIndent(doc, "", "  ")
}

// writeCSV quotes every field unconditionally, doubles embedded quotes
// and joins rows with CRLF, matching what spreadsheet importers expect.
// encoding/csv only quotes when it must, so the shape is built by hand.
func writeCSV(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
			sb.WriteByte('"')
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
