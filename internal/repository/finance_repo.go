package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/store"
)

type FinanceRepository interface {
	List(ctx context.Context) ([]domain.FinanceEntry, error)
	Append(ctx context.Context, entry domain.FinanceEntry) error
	Delete(ctx context.Context, id string) error
}

type StoreFinanceRepository struct {
	col *collection[domain.FinanceEntry]
}

func NewFinanceRepository(ctx context.Context, s store.Store, log *zap.SugaredLogger) (*StoreFinanceRepository, error) {
	col, err := newCollection[domain.FinanceEntry](ctx, s, store.KeyExpenses, log)
	if err != nil {
		return nil, err
	}
	return &StoreFinanceRepository{col: col}, nil
}

func (r *StoreFinanceRepository) List(_ context.Context) ([]domain.FinanceEntry, error) {
	return r.col.snapshot(), nil
}

func (r *StoreFinanceRepository) Append(ctx context.Context, entry domain.FinanceEntry) error {
	return r.col.mutate(ctx, func(items []domain.FinanceEntry) ([]domain.FinanceEntry, error) {
		return append(items, entry), nil
	})
}

func (r *StoreFinanceRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.FinanceEntry) ([]domain.FinanceEntry, error) {
		out := items[:0]
		found := false
		for _, e := range items {
			if e.ID == id {
				found = true
				continue
			}
			out = append(out, e)
		}
		if !found {
			return nil, domain.ErrNotFound
		}
		return out, nil
	})
}

var _ FinanceRepository = (*StoreFinanceRepository)(nil)
