package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	payload := []byte(`{
		"type": "booking_refunded",
		"booking_id": "b1",
		"booking_code": "STFL20260601123045ABCDEF123",
		"user_email": "alice@example.com",
		"route": "OSL - BGO",
		"amount": 10000,
		"status": "CANCELLED"
	}`)

	event, err := decodeEvent(payload)
	assert.NoError(t, err)
	assert.Equal(t, EventBookingRefunded, event.Type)
	assert.Equal(t, "b1", event.BookingID)
	assert.Equal(t, "alice@example.com", event.UserEmail)
	assert.Equal(t, int64(10000), event.Amount)
}

func TestDecodeEvent_rejectsBadPayloads(t *testing.T) {
	_, err := decodeEvent([]byte(`not json`))
	assert.Error(t, err)

	// valid JSON but not a booking event
	_, err = decodeEvent([]byte(`{"booking_id":"b1"}`))
	assert.Error(t, err)
}
