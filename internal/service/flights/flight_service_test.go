package flights

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/logger"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) AppendBatch(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockFlightRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, route domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("f-%d", n)
	}
}

func inventory() []domain.Flight {
	return []domain.Flight{
		{ID: "f1", Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-10", DepartureTime: "08:00", Available: true},
		{ID: "f2", Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-12", DepartureTime: "08:00", Available: true},
		{ID: "f3", Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-08", DepartureTime: "08:00", Available: true},
		{ID: "f4", Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-12", DepartureTime: "06:30", Available: false},
		{ID: "f5", Origin: "OSL", Destination: "TRD", DepartureDate: "2026-06-10", DepartureTime: "08:00", Available: true},
	}
}

func newTestService(flightRepo *MockFlightRepository, routeRepo *MockRouteRepository) *FlightService {
	return NewFlightService(flightRepo, routeRepo, nil, sequentialIDs(), nil, logger.NewNop())
}

func TestSearch_exactDate(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-12", Travelers: 1}
	results, err := svc.Search(context.Background(), params, domain.SearchExactDate)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "f2", results[0].ID)
}

func TestSearch_fromDateIsDefaultAndSorted(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-09", Travelers: 1}
	results, err := svc.Search(context.Background(), params, "")
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "f1", results[0].ID)
	assert.Equal(t, "f2", results[1].ID)
}

func TestSearch_allDatesIgnoresDate(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", Travelers: 1}
	results, err := svc.Search(context.Background(), params, domain.SearchAllDates)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	// sorted by departure date
	assert.Equal(t, "f3", results[0].ID)
}

func TestSearch_resultsAreSubsetOfAllDates(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-10", Travelers: 1}

	all, err := svc.Search(context.Background(), params, domain.SearchAllDates)
	assert.NoError(t, err)
	allIDs := make(map[string]bool)
	for _, f := range all {
		allIDs[f.ID] = true
	}

	for _, mode := range []domain.SearchMode{domain.SearchExactDate, domain.SearchFromDate} {
		results, err := svc.Search(context.Background(), params, mode)
		assert.NoError(t, err)
		for _, f := range results {
			assert.True(t, allIDs[f.ID], "mode %s returned flight %s outside allDates", mode, f.ID)
		}
	}
}

func TestSearch_validation(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-10"}
	_, err := svc.Search(context.Background(), params, domain.SearchExactDate)
	assert.Error(t, err) // travelers missing

	params = domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "bad", Travelers: 1}
	_, err = svc.Search(context.Background(), params, domain.SearchExactDate)
	assert.Error(t, err)

	// allDates needs no date at all
	params = domain.SearchParams{Origin: "OSL", Destination: "BGO", Travelers: 1}
	_, err = svc.Search(context.Background(), params, domain.SearchAllDates)
	assert.NoError(t, err)
}

func TestNextAvailable(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	flightRepo.On("List", mock.Anything).Return(inventory(), nil)
	svc := newTestService(flightRepo, &MockRouteRepository{})

	params := domain.SearchParams{Origin: "OSL", Destination: "BGO", DepartureDate: "2026-06-10"}
	next, err := svc.NextAvailable(context.Background(), params)
	assert.NoError(t, err)
	assert.NotNil(t, next)
	// strictly after the requested date, f4 skipped because unavailable
	assert.Equal(t, "f2", next.ID)

	params.DepartureDate = "2026-06-12"
	next, err = svc.NextAvailable(context.Background(), params)
	assert.NoError(t, err)
	assert.Nil(t, next)
}

func TestExpandSchedule_missingRouteAborts(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	routeRepo := &MockRouteRepository{}
	routeRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	svc := newTestService(flightRepo, routeRepo)

	_, err := svc.ExpandSchedule(context.Background(), ExpandInput{
		RouteID:       "missing",
		Airline:       "SkyBook Air",
		FlightNumber:  "SB101",
		DepartureTime: "08:00",
		ArrivalTime:   "09:05",
		Schedule:      domain.FlightSchedule{Recurrence: domain.RecurrenceOnce, StartDate: "2026-06-01"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	flightRepo.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestExpandSchedule_batchesInOneWrite(t *testing.T) {
	flightRepo := &MockFlightRepository{}
	routeRepo := &MockRouteRepository{}
	route := &domain.Route{ID: "r1", Origin: "OSL", Destination: "BGO", BasePrice: 10000}
	routeRepo.On("GetByID", mock.Anything, "r1").Return(route, nil)
	flightRepo.On("AppendBatch", mock.Anything, mock.Anything).Return(nil).Once()
	svc := newTestService(flightRepo, routeRepo)

	generated, err := svc.ExpandSchedule(context.Background(), ExpandInput{
		RouteID:       "r1",
		Airline:       "SkyBook Air",
		FlightNumber:  "SB101",
		DepartureTime: "08:00",
		ArrivalTime:   "09:05",
		Schedule: domain.FlightSchedule{
			Recurrence: domain.RecurrenceDaily,
			StartDate:  "2026-06-01",
			EndDate:    "2026-06-03",
		},
	})
	assert.NoError(t, err)
	assert.Len(t, generated, 3)
	for _, f := range generated {
		assert.Equal(t, "OSL", f.Origin)
		assert.Equal(t, int64(10000), f.BasePrice)
		assert.Equal(t, "1h 5m", f.Duration)
		assert.True(t, f.Available)
	}
	flightRepo.AssertExpectations(t)
}
