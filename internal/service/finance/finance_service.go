package finance

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/kafka"
	"github.com/skybook/skybook/internal/metrics"
	"github.com/skybook/skybook/internal/repository"
)

// RefundPolicy selects how the refund amount is computed from the booking's
// total price.
type RefundPolicy string

const (
	RefundFull    RefundPolicy = "full"    // the whole total
	RefundPartial RefundPolicy = "partial" // fixed 50%, rounded
	RefundCustom  RefundPolicy = "custom"  // caller-supplied, 0 < amount <= total
)

type FinanceUseCase interface {
	ListEntries(ctx context.Context) ([]domain.FinanceEntry, error)
	AddEntry(ctx context.Context, input EntryInput) (*domain.FinanceEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	Summary(ctx context.Context) (*domain.FinanceSummary, error)
	ExecuteRefund(ctx context.Context, bookingID string, policy RefundPolicy, customAmount int64) (*domain.FinanceEntry, error)
	FlightBreakdown(ctx context.Context, flightID string) (income, expense int64, err error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type EntryInput struct {
	Type        domain.EntryType     `json:"type"`
	RefID       string               `json:"refId,omitempty"`
	Description string               `json:"description"`
	Amount      int64                `json:"amount"`
	Date        string               `json:"date"`
	Category    domain.EntryCategory `json:"category"`
}

type FinanceService struct {
	entries  repository.FinanceRepository
	bookings repository.BookingRepository
	producer Producer
	topic    string
	newID    func() string
	clock    func() time.Time
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
}

type FinanceServiceOption func(*FinanceService)

func WithProducer(p Producer, topic string) FinanceServiceOption {
	return func(s *FinanceService) {
		s.producer = p
		s.topic = topic
	}
}

func WithClock(now func() time.Time) FinanceServiceOption {
	return func(s *FinanceService) { s.clock = now }
}

func WithMetrics(m *metrics.Metrics) FinanceServiceOption {
	return func(s *FinanceService) { s.metrics = m }
}

func NewFinanceService(entries repository.FinanceRepository, bookings repository.BookingRepository, newID func() string, log *zap.SugaredLogger, opts ...FinanceServiceOption) *FinanceService {
	s := &FinanceService{
		entries:  entries,
		bookings: bookings,
		newID:    newID,
		clock:    time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FinanceService) ListEntries(ctx context.Context) ([]domain.FinanceEntry, error) {
	return s.entries.List(ctx)
}

func (s *FinanceService) AddEntry(ctx context.Context, input EntryInput) (*domain.FinanceEntry, error) {
	if input.Description == "" {
		return nil, domain.Validationf("description is required")
	}
	if input.Amount <= 0 {
		return nil, domain.Validationf("amount must be positive")
	}
	if _, err := domain.ParseDate(input.Date); err != nil {
		return nil, domain.Validationf("invalid entry date %q", input.Date)
	}
	if input.Category != domain.CategoryIncome && input.Category != domain.CategoryExpense {
		return nil, domain.Validationf("category must be income or expense")
	}
	if input.Type == "" {
		input.Type = domain.EntryTypeOther
	}

	entry := domain.FinanceEntry{
		ID:          s.newID(),
		Type:        input.Type,
		RefID:       input.RefID,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FinanceService) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// Summary derives the aggregates: income from PAID booking totals plus
// income entries, expense from expense entries.
func (s *FinanceService) Summary(ctx context.Context) (*domain.FinanceSummary, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}

	var sum domain.FinanceSummary
	for _, b := range bookings {
		if b.PaymentStatus == domain.PaymentStatusPaid {
			sum.TotalIncome += b.TotalPrice
		}
	}
	for _, e := range entries {
		switch e.Category {
		case domain.CategoryIncome:
			sum.TotalIncome += e.Amount
		case domain.CategoryExpense:
			sum.TotalExpense += e.Amount
		}
	}
	sum.NetRevenue = sum.TotalIncome - sum.TotalExpense
	return &sum, nil
}

// ExecuteRefund flips the booking to REFUND-COMPLETE/REFUNDED and appends
// the matching expense entry as one logical unit: if the ledger write
// fails, the status flip is rolled back. An already-refunded booking is
// rejected, never refunded twice.
func (s *FinanceService) ExecuteRefund(ctx context.Context, bookingID string, policy RefundPolicy, customAmount int64) (*domain.FinanceEntry, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus != domain.PaymentStatusPaid {
		return nil, domain.Invariantf("booking %s is not paid", bookingID)
	}
	if b.BookingStatus == domain.BookingStatusRefundComplete {
		return nil, domain.Invariantf("booking %s is already refunded", bookingID)
	}

	amount, err := refundAmount(policy, b.TotalPrice, customAmount)
	if err != nil {
		return nil, err
	}

	prevStatus, prevPayment := b.BookingStatus, b.PaymentStatus
	refunded := domain.PaymentStatusRefunded
	updated, err := s.bookings.SetStatus(ctx, bookingID, domain.BookingStatusRefundComplete, &refunded)
	if err != nil {
		return nil, err
	}

	entry := domain.FinanceEntry{
		ID:          s.newID(),
		Type:        domain.EntryTypeBooking,
		RefID:       b.ID,
		Description: "Refund for booking " + b.BookingCode,
		Amount:      amount,
		Date:        domain.FormatDate(s.clock().UTC()),
		Category:    domain.CategoryExpense,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		// Roll the status flip back so the refund stays all-or-nothing.
		if _, rbErr := s.bookings.SetStatus(ctx, bookingID, prevStatus, &prevPayment); rbErr != nil {
			s.log.Errorw("refund rollback failed", "booking", bookingID, "error", rbErr)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Refunds.Inc()
	}
	s.publishRefund(ctx, updated, amount)
	s.log.Infow("refund executed", "booking", b.ID, "policy", string(policy), "amount", amount)
	return &entry, nil
}

func refundAmount(policy RefundPolicy, total, custom int64) (int64, error) {
	switch policy {
	case RefundFull:
		return total, nil
	case RefundPartial:
		return int64(math.Round(float64(total) * 0.5)), nil
	case RefundCustom:
		if custom <= 0 || custom > total {
			return 0, domain.Validationf("custom refund amount must be in (0, %d], got %d", total, custom)
		}
		return custom, nil
	default:
		return 0, domain.Validationf("unknown refund policy %q", policy)
	}
}

// FlightBreakdown sums paid booking income referencing the flight and
// expense entries recorded against it.
func (s *FinanceService) FlightBreakdown(ctx context.Context, flightID string) (int64, int64, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	entries, err := s.entries.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	var income, expense int64
	for _, b := range bookings {
		if b.PaymentStatus != domain.PaymentStatusPaid {
			continue
		}
		if b.Flights.Outbound == flightID || b.Flights.Return == flightID {
			income += b.TotalPrice
		}
	}
	for _, e := range entries {
		if e.Type == domain.EntryTypeFlight && e.RefID == flightID && e.Category == domain.CategoryExpense {
			expense += e.Amount
		}
	}
	return income, expense, nil
}

func (s *FinanceService) publishRefund(ctx context.Context, b *domain.Booking, amount int64) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        kafka.EventBookingRefunded,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		UserEmail:   b.UserEmail,
		Route:       b.Route,
		Amount:      amount,
		Status:      string(b.BookingStatus),
		OccurredAt:  s.clock().UTC(),
	}
	if err := s.producer.Publish(ctx, s.topic, b.BookingCode, event); err != nil {
		s.log.Warnw("failed to publish refund event", "booking", b.ID, "error", err)
	}
}

var _ FinanceUseCase = (*FinanceService)(nil)
