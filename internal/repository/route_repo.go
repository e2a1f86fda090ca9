package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/store"
)

type RouteRepository interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	Create(ctx context.Context, route domain.Route) error
	Update(ctx context.Context, route domain.Route) error
	Delete(ctx context.Context, id string) error
}

type StoreRouteRepository struct {
	col *collection[domain.Route]
}

func NewRouteRepository(ctx context.Context, s store.Store, log *zap.SugaredLogger) (*StoreRouteRepository, error) {
	col, err := newCollection[domain.Route](ctx, s, store.KeyRoutes, log)
	if err != nil {
		return nil, err
	}
	return &StoreRouteRepository{col: col}, nil
}

func (r *StoreRouteRepository) List(_ context.Context) ([]domain.Route, error) {
	return r.col.snapshot(), nil
}

func (r *StoreRouteRepository) GetByID(_ context.Context, id string) (*domain.Route, error) {
	for _, route := range r.col.snapshot() {
		if route.ID == id {
			return &route, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreRouteRepository) Create(ctx context.Context, route domain.Route) error {
	return r.col.mutate(ctx, func(items []domain.Route) ([]domain.Route, error) {
		return append(items, route), nil
	})
}

func (r *StoreRouteRepository) Update(ctx context.Context, route domain.Route) error {
	return r.col.mutate(ctx, func(items []domain.Route) ([]domain.Route, error) {
		for i := range items {
			if items[i].ID == route.ID {
				items[i] = route
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *StoreRouteRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.Route) ([]domain.Route, error) {
		out := items[:0]
		found := false
		for _, route := range items {
			if route.ID == id {
				found = true
				continue
			}
			out = append(out, route)
		}
		if !found {
			return nil, domain.ErrNotFound
		}
		return out, nil
	})
}

var _ RouteRepository = (*StoreRouteRepository)(nil)
