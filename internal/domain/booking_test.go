package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightRef_legacyStringFormat(t *testing.T) {
	oneWay, err := json.Marshal(Booking{ID: "b1", Flights: FlightRef{Outbound: "f1"}})
	assert.NoError(t, err)
	assert.Contains(t, string(oneWay), `"flightId":"f1"`)

	roundTrip, err := json.Marshal(Booking{ID: "b2", Flights: FlightRef{Outbound: "f1", Return: "f9"}})
	assert.NoError(t, err)
	assert.Contains(t, string(roundTrip), `"flightId":"f1,f9"`)
}

func TestFlightRef_parsesPersistedBookings(t *testing.T) {
	var b Booking
	err := json.Unmarshal([]byte(`{"id":"b1","flightId":"f1,f9"}`), &b)
	assert.NoError(t, err)
	assert.Equal(t, "f1", b.Flights.Outbound)
	assert.Equal(t, "f9", b.Flights.Return)
	assert.True(t, b.Flights.IsRoundTrip())

	err = json.Unmarshal([]byte(`{"id":"b2","flightId":"f1"}`), &b)
	assert.NoError(t, err)
	assert.Equal(t, "f1", b.Flights.Outbound)
	assert.Empty(t, b.Flights.Return)
	assert.False(t, b.Flights.IsRoundTrip())
}

func TestBookingStatus_terminal(t *testing.T) {
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.True(t, BookingStatusRefundComplete.Terminal())
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusConfirmed.Terminal())
}
