package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "PENDING"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusRefundComplete BookingStatus = "REFUND-COMPLETE"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Terminal reports whether no further status transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusRefundComplete
}

// FlightRef is an ordered one-or-two element flight reference: the outbound
// leg, plus a return leg for round trips. It serializes as the legacy
// comma-joined flightId string so previously persisted bookings parse as-is.
type FlightRef struct {
	Outbound string
	Return   string
}

func (r FlightRef) IsRoundTrip() bool { return r.Return != "" }

func (r FlightRef) String() string {
	if r.Return == "" {
		return r.Outbound
	}
	return r.Outbound + "," + r.Return
}

func (r FlightRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *FlightRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	out, ret, _ := strings.Cut(s, ",")
	r.Outbound = out
	r.Return = ret
	return nil
}

// Booking is a reservation against one or two flights. BookingCode is
// immutable once assigned; BookingStatus and PaymentStatus are the only
// fields mutated after creation.
type Booking struct {
	ID            string        `json:"id"`
	BookingCode   string        `json:"bookingCode"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	UserEmail     string        `json:"userEmail"`
	Flights       FlightRef     `json:"flightId"`
	Route         string        `json:"route"`
	DepartureDate string        `json:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty"`
	Travelers     int           `json:"travelers"`
	TotalPrice    int64         `json:"totalPrice"`
	BookingStatus BookingStatus `json:"bookingStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}
