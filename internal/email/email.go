package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/kafka"
)

// Sender turns booking events into customer notifications. There is no
// real mail transport behind it; messages are rendered and logged, which
// is enough for the demo and keeps the worker pipeline exercised
// end to end.
type Sender struct {
	from string
	log  *zap.SugaredLogger
}

func NewSender(from string, log *zap.SugaredLogger) *Sender {
	return &Sender{from: from, log: log}
}

// Notify picks the template for the event type and "sends" it.
func (s *Sender) Notify(ctx context.Context, event kafka.BookingEvent) error {
	if event.UserEmail == "" {
		return fmt.Errorf("booking event %s has no recipient", event.BookingCode)
	}

	subject, body := render(event)
	s.log.Infow("notification sent",
		"from", s.from,
		"to", event.UserEmail,
		"subject", subject,
		"body", body,
	)
	return nil
}

func render(event kafka.BookingEvent) (subject, body string) {
	switch event.Type {
	case kafka.EventBookingCreated:
		subject = fmt.Sprintf("Booking confirmed: %s", event.BookingCode)
		body = fmt.Sprintf("Your booking %s for %s is confirmed. Total: %d.",
			event.BookingCode, event.Route, event.Amount)
	case kafka.EventBookingRefunded:
		subject = fmt.Sprintf("Refund processed: %s", event.BookingCode)
		body = fmt.Sprintf("A refund of %d for booking %s has been processed.",
			event.Amount, event.BookingCode)
	default:
		subject = fmt.Sprintf("Booking update: %s", event.BookingCode)
		body = fmt.Sprintf("Booking %s is now %s.", event.BookingCode, event.Status)
	}
	return subject, body
}
