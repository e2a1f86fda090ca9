package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/store"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	AppendBatch(ctx context.Context, flights []domain.Flight) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type StoreFlightRepository struct {
	col *collection[domain.Flight]
}

func NewFlightRepository(ctx context.Context, s store.Store, log *zap.SugaredLogger) (*StoreFlightRepository, error) {
	col, err := newCollection[domain.Flight](ctx, s, store.KeyFlights, log)
	if err != nil {
		return nil, err
	}
	return &StoreFlightRepository{col: col}, nil
}

func (r *StoreFlightRepository) List(_ context.Context) ([]domain.Flight, error) {
	return r.col.snapshot(), nil
}

func (r *StoreFlightRepository) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	for _, f := range r.col.snapshot() {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

// AppendBatch commits one expansion batch in a single persistence write, so
// a partial flight set is never stored.
func (r *StoreFlightRepository) AppendBatch(ctx context.Context, flights []domain.Flight) error {
	return r.col.mutate(ctx, func(items []domain.Flight) ([]domain.Flight, error) {
		return append(items, flights...), nil
	})
}

func (r *StoreFlightRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.col.mutate(ctx, func(items []domain.Flight) ([]domain.Flight, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Available = available
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *StoreFlightRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.Flight) ([]domain.Flight, error) {
		out := items[:0]
		found := false
		for _, f := range items {
			if f.ID == id {
				found = true
				continue
			}
			out = append(out, f)
		}
		if !found {
			return nil, domain.ErrNotFound
		}
		return out, nil
	})
}

var _ FlightRepository = (*StoreFlightRepository)(nil)
