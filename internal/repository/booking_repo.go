package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/store"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking domain.Booking) error
	// SetStatus rewrites the mutable status pair. A nil paymentStatus leaves
	// the payment status untouched.
	SetStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus *domain.PaymentStatus) (*domain.Booking, error)
}

type StoreBookingRepository struct {
	col *collection[domain.Booking]
}

func NewBookingRepository(ctx context.Context, s store.Store, log *zap.SugaredLogger) (*StoreBookingRepository, error) {
	col, err := newCollection[domain.Booking](ctx, s, store.KeyBookings, log)
	if err != nil {
		return nil, err
	}
	return &StoreBookingRepository{col: col}, nil
}

func (r *StoreBookingRepository) List(_ context.Context) ([]domain.Booking, error) {
	return r.col.snapshot(), nil
}

func (r *StoreBookingRepository) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.col.snapshot() {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *StoreBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	for _, b := range r.col.snapshot() {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreBookingRepository) Create(ctx context.Context, booking domain.Booking) error {
	return r.col.mutate(ctx, func(items []domain.Booking) ([]domain.Booking, error) {
		return append(items, booking), nil
	})
}

func (r *StoreBookingRepository) SetStatus(ctx context.Context, id string, status domain.BookingStatus, paymentStatus *domain.PaymentStatus) (*domain.Booking, error) {
	var updated domain.Booking
	err := r.col.mutate(ctx, func(items []domain.Booking) ([]domain.Booking, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].BookingStatus = status
				if paymentStatus != nil {
					items[i].PaymentStatus = *paymentStatus
				}
				updated = items[i]
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

var _ BookingRepository = (*StoreBookingRepository)(nil)
