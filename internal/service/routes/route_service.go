package routes

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/pricing"
	"github.com/skybook/skybook/internal/repository"
)

type RouteUseCase interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	AddOrUpdate(ctx context.Context, route domain.Route) (*domain.Route, error)
	SetMultiplierRange(ctx context.Context, id, start, end string, multiplier float64) (*domain.Route, error)
	Delete(ctx context.Context, id string) error
	EffectivePrice(ctx context.Context, id, date string) (int64, error)
}

type RouteService struct {
	routes repository.RouteRepository
	newID  func() string
	log    *zap.SugaredLogger
}

func NewRouteService(routes repository.RouteRepository, newID func() string, log *zap.SugaredLogger) *RouteService {
	return &RouteService{routes: routes, newID: newID, log: log}
}

func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

func (s *RouteService) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// AddOrUpdate creates the route when it carries no id yet, otherwise
// replaces the stored route wholesale. Routes are mutated only here.
func (s *RouteService) AddOrUpdate(ctx context.Context, route domain.Route) (*domain.Route, error) {
	if route.Origin == "" || route.Destination == "" {
		return nil, domain.Validationf("origin and destination are required")
	}
	if route.Origin == route.Destination {
		return nil, domain.Validationf("origin and destination must differ")
	}
	if route.BasePrice <= 0 {
		return nil, domain.Validationf("base price must be positive")
	}
	for date, m := range route.PriceMultipliers {
		if _, err := domain.ParseDate(date); err != nil {
			return nil, domain.Validationf("invalid multiplier date %q", date)
		}
		if err := pricing.ValidateMultiplier(m); err != nil {
			return nil, err
		}
	}
	if route.PriceMultipliers == nil {
		route.PriceMultipliers = map[string]float64{}
	}

	if route.ID == "" {
		route.ID = s.newID()
		if err := s.routes.Create(ctx, route); err != nil {
			return nil, err
		}
		s.log.Infow("route created", "route", route.ID, "origin", route.Origin, "destination", route.Destination)
		return &route, nil
	}

	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}
	return &route, nil
}

// SetMultiplierRange bulk-assigns one multiplier to every day in the
// inclusive range, overwriting previous values for those dates.
func (s *RouteService) SetMultiplierRange(ctx context.Context, id, start, end string, multiplier float64) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := pricing.ApplyRange(*route, start, end, multiplier)
	if err != nil {
		return nil, err
	}
	route.PriceMultipliers = updated

	if err := s.routes.Update(ctx, *route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, id string) error {
	return s.routes.Delete(ctx, id)
}

func (s *RouteService) EffectivePrice(ctx context.Context, id, date string) (int64, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if _, err := domain.ParseDate(date); err != nil {
		return 0, domain.Validationf("invalid date %q", date)
	}
	return pricing.Effective(*route, date), nil
}

var _ RouteUseCase = (*RouteService)(nil)
