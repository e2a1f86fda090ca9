package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/logger"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) SetStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus *domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, paymentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		UserName:      "Alice",
		UserEmail:     "alice@example.com",
		Flights:       domain.FlightRef{Outbound: "f1"},
		Route:         "OSL - BGO",
		DepartureDate: "2026-06-10",
		Travelers:     2,
		TotalPrice:    20000,
	}
}

func TestGenerateCode_shape(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 30, 45, 0, time.UTC)

	code := generateCode(now)
	assert.Regexp(t, regexp.MustCompile(`^STFL20260601123045[A-Z0-9]{9}$`), code)
}

func TestGenerateCode_uniqueWithFrozenClock(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 30, 45, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateCode(now)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCreate_defaultsAndPersists(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := NewBookingService(repo, func() string { return "b1" }, logger.NewNop())

	booked, err := svc.Create(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, "b1", booked.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, booked.BookingStatus)
	assert.Equal(t, domain.PaymentStatusPaid, booked.PaymentStatus)
	assert.Contains(t, booked.BookingCode, "STFL")
	repo.AssertExpectations(t)
}

func TestCreate_validation(t *testing.T) {
	svc := NewBookingService(&MockBookingRepository{}, func() string { return "b1" }, logger.NewNop())

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing flight", func(in *CreateBookingInput) { in.Flights = domain.FlightRef{} }},
		{"missing name", func(in *CreateBookingInput) { in.UserName = "" }},
		{"missing email", func(in *CreateBookingInput) { in.UserEmail = "" }},
		{"zero travelers", func(in *CreateBookingInput) { in.Travelers = 0 }},
		{"zero price", func(in *CreateBookingInput) { in.TotalPrice = 0 }},
		{"bad date", func(in *CreateBookingInput) { in.DepartureDate = "10.06.2026" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			assert.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCreate_publishesEvent(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(repo, func() string { return "b1" }, logger.NewNop(),
		WithProducer(producer, "booking-events"))

	_, err := svc.Create(context.Background(), validInput())
	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestUpdateStatus_transitions(t *testing.T) {
	allowed := []struct{ from, to domain.BookingStatus }{
		{domain.BookingStatusPending, domain.BookingStatusConfirmed},
		{domain.BookingStatusPending, domain.BookingStatusCancelled},
		{domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, validateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	rejected := []struct{ from, to domain.BookingStatus }{
		{domain.BookingStatusCancelled, domain.BookingStatusConfirmed},
		{domain.BookingStatusRefundComplete, domain.BookingStatusConfirmed},
		{domain.BookingStatusConfirmed, domain.BookingStatusPending},
		{domain.BookingStatusConfirmed, domain.BookingStatusRefundComplete},
		{domain.BookingStatusPending, domain.BookingStatusRefundComplete},
	}
	for _, tc := range rejected {
		err := validateTransition(tc.from, tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.True(t, domain.IsInvariant(err))
	}
}

func TestUpdateStatus_terminalIsFrozen(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{
		ID:            "b1",
		BookingStatus: domain.BookingStatusCancelled,
	}, nil)
	svc := NewBookingService(repo, func() string { return "id" }, logger.NewNop())

	_, err := svc.UpdateStatus(context.Background(), "b1", domain.BookingStatusConfirmed)
	assert.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
	repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
