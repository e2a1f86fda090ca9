package flights

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/metrics"
	"github.com/skybook/skybook/internal/repository"
	"github.com/skybook/skybook/internal/schedule"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, params domain.SearchParams, mode domain.SearchMode) ([]domain.Flight, error)
	NextAvailable(ctx context.Context, params domain.SearchParams) (*domain.Flight, error)
	ExpandSchedule(ctx context.Context, input ExpandInput) ([]domain.Flight, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// ExpandInput is the base flight template plus the recurrence to expand.
// Origin, destination and base price are taken from the referenced route.
type ExpandInput struct {
	RouteID       string                `json:"routeId"`
	Airline       string                `json:"airline"`
	FlightNumber  string                `json:"flightNumber"`
	DepartureTime string                `json:"departureTime"`
	ArrivalTime   string                `json:"arrivalTime"`
	Schedule      domain.FlightSchedule `json:"schedule"`
}

type FlightService struct {
	flights repository.FlightRepository
	routes  repository.RouteRepository
	cache   Cache
	newID   schedule.IDGenerator
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

func NewFlightService(flights repository.FlightRepository, routes repository.RouteRepository, cache Cache, newID schedule.IDGenerator, m *metrics.Metrics, log *zap.SugaredLogger) *FlightService {
	return &FlightService{flights: flights, routes: routes, cache: cache, newID: newID, metrics: m, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// Search runs one of the three query modes over the inventory. Results are
// restricted to available flights on the requested origin/destination pair
// and sorted by departure date.
func (s *FlightService) Search(ctx context.Context, params domain.SearchParams, mode domain.SearchMode) ([]domain.Flight, error) {
	if mode == "" {
		mode = domain.SearchFromDate
	}
	if params.Travelers < 1 {
		return nil, domain.Validationf("travelers must be at least 1")
	}

	var from time.Time
	if mode != domain.SearchAllDates {
		var err error
		from, err = domain.ParseDate(params.DepartureDate)
		if err != nil {
			return nil, domain.Validationf("invalid departure date %q", params.DepartureDate)
		}
	}

	inventory, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.Flight
	for _, f := range inventory {
		if f.Origin != params.Origin || f.Destination != params.Destination || !f.Available {
			continue
		}
		switch mode {
		case domain.SearchExactDate:
			if f.DepartureDate != params.DepartureDate {
				continue
			}
		case domain.SearchFromDate:
			// Calendar comparison, not string comparison.
			d, err := domain.ParseDate(f.DepartureDate)
			if err != nil || d.Before(from) {
				continue
			}
		case domain.SearchAllDates:
		default:
			return nil, domain.Validationf("unknown search mode %q", mode)
		}
		results = append(results, f)
	}

	sortByDeparture(results)
	if s.metrics != nil {
		s.metrics.Searches.Inc()
	}
	return results, nil
}

// NextAvailable returns the earliest available flight on the route strictly
// after the requested departure date, regardless of search mode. Nil when
// the route has no upcoming flights.
func (s *FlightService) NextAvailable(ctx context.Context, params domain.SearchParams) (*domain.Flight, error) {
	after, err := domain.ParseDate(params.DepartureDate)
	if err != nil {
		return nil, domain.Validationf("invalid departure date %q", params.DepartureDate)
	}

	inventory, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var next *domain.Flight
	var nextDate time.Time
	for _, f := range inventory {
		if f.Origin != params.Origin || f.Destination != params.Destination || !f.Available {
			continue
		}
		d, err := domain.ParseDate(f.DepartureDate)
		if err != nil || !d.After(after) {
			continue
		}
		if next == nil || d.Before(nextDate) {
			cp := f
			next = &cp
			nextDate = d
		}
	}
	return next, nil
}

// ExpandSchedule materializes the template into the inventory. The route
// reference is resolved first; a missing route aborts before any flight is
// generated, and the batch commits in one write so no partial set is stored.
func (s *FlightService) ExpandSchedule(ctx context.Context, input ExpandInput) ([]domain.Flight, error) {
	if input.RouteID == "" || input.Airline == "" || input.FlightNumber == "" || input.DepartureTime == "" || input.ArrivalTime == "" {
		return nil, domain.Validationf("routeId, airline, flightNumber, departureTime and arrivalTime are required")
	}

	route, err := s.routes.GetByID(ctx, input.RouteID)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", input.RouteID, err)
	}

	duration, err := schedule.Duration(input.DepartureTime, input.ArrivalTime)
	if err != nil {
		return nil, err
	}

	template := domain.Flight{
		Origin:        route.Origin,
		Destination:   route.Destination,
		RouteID:       route.ID,
		BasePrice:     route.BasePrice,
		Airline:       input.Airline,
		FlightNumber:  input.FlightNumber,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Duration:      duration,
		Available:     true,
	}

	generated, err := schedule.Expand(template, input.Schedule, s.newID)
	if err != nil {
		return nil, err
	}

	if err := s.flights.AppendBatch(ctx, generated); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	if s.metrics != nil {
		s.metrics.FlightsExpanded.Add(float64(len(generated)))
	}
	s.log.Infow("expanded flight schedule", "route", route.ID, "flightNumber", input.FlightNumber, "generated", len(generated))
	return generated, nil
}

func (s *FlightService) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.flights.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func sortByDeparture(flights []domain.Flight) {
	sort.SliceStable(flights, func(i, j int) bool {
		di, erri := domain.ParseDate(flights[i].DepartureDate)
		dj, errj := domain.ParseDate(flights[j].DepartureDate)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		if di.Equal(dj) {
			return flights[i].DepartureTime < flights[j].DepartureTime
		}
		return di.Before(dj)
	})
}

var _ FlightUseCase = (*FlightService)(nil)
