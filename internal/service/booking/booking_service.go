package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/kafka"
	"github.com/skybook/skybook/internal/metrics"
	"github.com/skybook/skybook/internal/repository"
)

// codePrefix is the user-facing booking code prefix.
const codePrefix = "STFL"

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID        string               `json:"userId"`
	UserName      string               `json:"userName"`
	UserEmail     string               `json:"userEmail"`
	Flights       domain.FlightRef     `json:"flightId"`
	Route         string               `json:"route"`
	DepartureDate string               `json:"departureDate"`
	ReturnDate    string               `json:"returnDate,omitempty"`
	Travelers     int                  `json:"travelers"`
	TotalPrice    int64                `json:"totalPrice"`
	BookingStatus domain.BookingStatus `json:"bookingStatus,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus,omitempty"`
}

type BookingService struct {
	bookings        repository.BookingRepository
	producer        Producer
	topic           string
	processingDelay time.Duration
	newID           func() string
	newCode         func() string
	clock           func() time.Time
	metrics         *metrics.Metrics
	log             *zap.SugaredLogger
}

type BookingServiceOption func(*BookingService)

func WithProducer(p Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.topic = topic
	}
}

// WithProcessingDelay sets the simulated payment-processing wait. The wait
// always completes before the booking is recorded; there is no cancellation
// path.
func WithProcessingDelay(d time.Duration) BookingServiceOption {
	return func(s *BookingService) { s.processingDelay = d }
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) { s.clock = now }
}

func WithCodeGenerator(gen func() string) BookingServiceOption {
	return func(s *BookingService) { s.newCode = gen }
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) { s.metrics = m }
}

func NewBookingService(bookings repository.BookingRepository, newID func() string, log *zap.SugaredLogger, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		bookings: bookings,
		newID:    newID,
		clock:    time.Now,
		log:      log,
	}
	s.newCode = func() string { return generateCode(s.clock()) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generateCode builds the fixed prefix + high-resolution timestamp + random
// alphanumeric suffix. Uniqueness is probabilistic; the uuid-derived suffix
// keeps the collision odds negligible regardless of clock resolution.
func generateCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return codePrefix + now.UTC().Format("20060102150405") + suffix
}

// Create appends one booking record and returns it with its freshly
// assigned code. Everything except the status pair is immutable afterwards.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Flights.Outbound == "" {
		return nil, domain.Validationf("flight reference is required")
	}
	if input.UserName == "" || input.UserEmail == "" {
		return nil, domain.Validationf("traveler name and email are required")
	}
	if input.Travelers < 1 {
		return nil, domain.Validationf("travelers must be at least 1")
	}
	if input.TotalPrice <= 0 {
		return nil, domain.Validationf("total price must be positive")
	}
	if _, err := domain.ParseDate(input.DepartureDate); err != nil {
		return nil, domain.Validationf("invalid departure date %q", input.DepartureDate)
	}
	if input.BookingStatus == "" {
		input.BookingStatus = domain.BookingStatusConfirmed
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = domain.PaymentStatusPaid
	}

	// Simulated payment processing. Must complete before the booking is
	// recorded.
	if s.processingDelay > 0 {
		time.Sleep(s.processingDelay)
	}

	booking := domain.Booking{
		ID:            s.newID(),
		BookingCode:   s.newCode(),
		UserID:        input.UserID,
		UserName:      input.UserName,
		UserEmail:     input.UserEmail,
		Flights:       input.Flights,
		Route:         input.Route,
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
		Travelers:     input.Travelers,
		TotalPrice:    input.TotalPrice,
		BookingStatus: input.BookingStatus,
		PaymentStatus: input.PaymentStatus,
		CreatedAt:     s.clock().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.publish(ctx, kafka.EventBookingCreated, &booking)
	s.log.Infow("booking created", "booking", booking.ID, "code", booking.BookingCode, "total", booking.TotalPrice)
	return &booking, nil
}

// UpdateStatus transitions bookingStatus only. Payment status is never
// touched here; the refund workflow owns that side effect.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTransition(current.BookingStatus, status); err != nil {
		return nil, err
	}

	updated, err := s.bookings.SetStatus(ctx, id, status, nil)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingStatusChanged, updated)
	return updated, nil
}

func validateTransition(from, to domain.BookingStatus) error {
	if from.Terminal() {
		return domain.Invariantf("booking status %s is terminal", from)
	}
	if to == domain.BookingStatusRefundComplete {
		return domain.Invariantf("REFUND-COMPLETE can only be reached through the refund workflow")
	}
	switch {
	case from == domain.BookingStatusPending && to == domain.BookingStatusConfirmed:
	case from == domain.BookingStatusPending && to == domain.BookingStatusCancelled:
	case from == domain.BookingStatusConfirmed && to == domain.BookingStatusCancelled:
	default:
		return domain.Invariantf("invalid booking status transition %s -> %s", from, to)
	}
	return nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		UserEmail:   b.UserEmail,
		Route:       b.Route,
		Amount:      b.TotalPrice,
		Status:      string(b.BookingStatus),
		OccurredAt:  s.clock().UTC(),
	}
	if err := s.producer.Publish(ctx, s.topic, b.BookingCode, event); err != nil {
		s.log.Warnw("failed to publish booking event", "type", eventType, "booking", b.ID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
