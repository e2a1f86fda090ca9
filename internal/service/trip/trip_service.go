package trip

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/pricing"
	"github.com/skybook/skybook/internal/service/booking"
	"github.com/skybook/skybook/internal/service/flights"
)

// State tracks where a selection session is in the search-to-booking flow.
type State string

const (
	StateSearching          State = "SEARCHING"
	StateResultsShown       State = "RESULTS_SHOWN"
	StateReturnResultsShown State = "RETURN_RESULTS_SHOWN"
	StateBooking            State = "BOOKING"
	StateConfirmed          State = "CONFIRMED"
)

// Session holds one user's in-flight selection. Sessions live in memory
// only; a restart drops them, which matches their throwaway nature.
type Session struct {
	mu sync.Mutex

	ID            string
	State         State
	Params        domain.SearchParams
	Mode          domain.SearchMode
	Results       []domain.Flight
	ReturnResults []domain.Flight
	Outbound      *domain.Flight
	Return        *domain.Flight
	Booking       *domain.Booking
}

type SessionView struct {
	ID            string              `json:"id"`
	State         State               `json:"state"`
	Params        domain.SearchParams `json:"params"`
	Mode          domain.SearchMode   `json:"mode"`
	Results       []domain.Flight     `json:"results,omitempty"`
	ReturnResults []domain.Flight     `json:"returnResults,omitempty"`
	Outbound      *domain.Flight      `json:"outbound,omitempty"`
	Return        *domain.Flight      `json:"return,omitempty"`
	Booking       *domain.Booking     `json:"booking,omitempty"`
}

type TripUseCase interface {
	NewSession(ctx context.Context) (*SessionView, error)
	Get(ctx context.Context, sessionID string) (*SessionView, error)
	Search(ctx context.Context, sessionID string, params domain.SearchParams, mode domain.SearchMode) (*SessionView, error)
	SetMode(ctx context.Context, sessionID string, mode domain.SearchMode) (*SessionView, error)
	SelectOutbound(ctx context.Context, sessionID, flightID string, user *domain.User) (*SessionView, error)
	SelectReturn(ctx context.Context, sessionID, flightID string, user *domain.User) (*SessionView, error)
	Complete(ctx context.Context, sessionID string, user *domain.User) (*SessionView, error)
	Reset(ctx context.Context, sessionID string) (*SessionView, error)
}

type TripService struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	calc     *pricing.Calculator
	newID    func() string
	log      *zap.SugaredLogger
}

func NewTripService(fl flights.FlightUseCase, bk booking.BookingUseCase, calc *pricing.Calculator, newID func() string, log *zap.SugaredLogger) *TripService {
	return &TripService{
		sessions: make(map[string]*Session),
		flights:  fl,
		bookings: bk,
		calc:     calc,
		newID:    newID,
		log:      log,
	}
}

func (s *TripService) NewSession(ctx context.Context) (*SessionView, error) {
	sess := &Session{
		ID:    s.newID(),
		State: StateSearching,
		Mode:  domain.SearchFromDate,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess.view(), nil
}

func (s *TripService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Search runs the outbound query and moves the session to RESULTS_SHOWN.
// Any previous selections are discarded.
func (s *TripService) Search(ctx context.Context, sessionID string, params domain.SearchParams, mode domain.SearchMode) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State == StateConfirmed {
		return nil, domain.Invariantf("session %s is already confirmed", sessionID)
	}
	if mode == "" {
		mode = domain.SearchFromDate
	}
	results, err := s.flights.Search(ctx, params, mode)
	if err != nil {
		return nil, err
	}

	sess.Params = params
	sess.Mode = mode
	sess.Results = results
	sess.ReturnResults = nil
	sess.Outbound = nil
	sess.Return = nil
	sess.State = StateResultsShown
	return sess.view(), nil
}

// SetMode re-runs the query for whichever leg the session currently shows.
func (s *TripService) SetMode(ctx context.Context, sessionID string, mode domain.SearchMode) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.State {
	case StateResultsShown:
		results, err := s.flights.Search(ctx, sess.Params, mode)
		if err != nil {
			return nil, err
		}
		sess.Mode = mode
		sess.Results = results
	case StateReturnResultsShown:
		results, err := s.flights.Search(ctx, returnParams(sess.Params), mode)
		if err != nil {
			return nil, err
		}
		sess.Mode = mode
		sess.ReturnResults = results
	default:
		return nil, domain.Invariantf("no results to re-query in state %s", sess.State)
	}
	return sess.view(), nil
}

// SelectOutbound picks the departure flight for a signed-in user. For a
// round trip this kicks off the return-leg search with origin and
// destination swapped and the return date as the travel date; a one-way
// trip goes straight to booking. Without a user nothing moves: the
// session keeps its results so the caller can log in and retry.
func (s *TripService) SelectOutbound(ctx context.Context, sessionID, flightID string, user *domain.User) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if user == nil {
		return nil, domain.ErrAuthRequired
	}
	if sess.State != StateResultsShown {
		return nil, domain.Invariantf("cannot select a departure flight in state %s", sess.State)
	}
	flight := findFlight(sess.Results, flightID)
	if flight == nil {
		return nil, domain.Validationf("flight %s is not among the shown results", flightID)
	}
	sess.Outbound = flight

	if sess.Params.TripType != domain.TripRoundTrip {
		sess.State = StateBooking
		return sess.view(), nil
	}

	// the return leg is always offered in from-date mode, regardless of
	// how the outbound results were queried
	results, err := s.flights.Search(ctx, returnParams(sess.Params), domain.SearchFromDate)
	if err != nil {
		sess.Outbound = nil
		return nil, err
	}
	sess.ReturnResults = results
	sess.State = StateReturnResultsShown
	return sess.view(), nil
}

// SelectReturn picks the return flight. Selecting a return leg before a
// departure leg is rejected, and like SelectOutbound this requires a
// signed-in user.
func (s *TripService) SelectReturn(ctx context.Context, sessionID, flightID string, user *domain.User) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if user == nil {
		return nil, domain.ErrAuthRequired
	}
	if sess.Outbound == nil {
		return nil, domain.Validationf("select a departure flight first")
	}
	if sess.State != StateReturnResultsShown {
		return nil, domain.Invariantf("cannot select a return flight in state %s", sess.State)
	}
	flight := findFlight(sess.ReturnResults, flightID)
	if flight == nil {
		return nil, domain.Validationf("flight %s is not among the shown results", flightID)
	}
	sess.Return = flight
	sess.State = StateBooking
	return sess.view(), nil
}

// Complete books the selected trip for the authenticated user. Without a
// user the session stays exactly where it is so the caller can retry
// after logging in.
func (s *TripService) Complete(ctx context.Context, sessionID string, user *domain.User) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.State != StateBooking {
		return nil, domain.Invariantf("cannot complete a booking in state %s", sess.State)
	}
	if user == nil {
		return nil, domain.ErrAuthRequired
	}

	total, err := s.tripTotal(sess)
	if err != nil {
		return nil, err
	}

	input := booking.CreateBookingInput{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		Flights:       domain.FlightRef{Outbound: sess.Outbound.ID},
		Route:         fmt.Sprintf("%s - %s", sess.Outbound.Origin, sess.Outbound.Destination),
		DepartureDate: sess.Outbound.DepartureDate,
		Travelers:     sess.Params.Travelers,
		TotalPrice:    total,
	}
	if sess.Return != nil {
		input.Flights.Return = sess.Return.ID
		input.ReturnDate = sess.Return.DepartureDate
	}

	booked, err := s.bookings.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	sess.Booking = booked
	sess.State = StateConfirmed
	s.log.Infow("trip confirmed", "session", sess.ID, "booking", booked.ID, "total", total)
	return sess.view(), nil
}

// Reset returns the session to SEARCHING with everything cleared, ready
// for a fresh search.
func (s *TripService) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.State = StateSearching
	sess.Params = domain.SearchParams{}
	sess.Mode = domain.SearchFromDate
	sess.Results = nil
	sess.ReturnResults = nil
	sess.Outbound = nil
	sess.Return = nil
	sess.Booking = nil
	return sess.view(), nil
}

// tripTotal prices each leg with the dynamic calculator and sums them.
func (s *TripService) tripTotal(sess *Session) (int64, error) {
	total, err := s.calc.Display(sess.Outbound.BasePrice, sess.Outbound.DepartureDate, sess.Params.Travelers)
	if err != nil {
		return 0, err
	}
	if sess.Return != nil {
		ret, err := s.calc.Display(sess.Return.BasePrice, sess.Return.DepartureDate, sess.Params.Travelers)
		if err != nil {
			return 0, err
		}
		total += ret
	}
	return total, nil
}

func (s *TripService) session(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// returnParams derives the return-leg query: endpoints swapped, the
// return date becomes the travel date, and the leg itself is one-way.
func returnParams(p domain.SearchParams) domain.SearchParams {
	return domain.SearchParams{
		Origin:        p.Destination,
		Destination:   p.Origin,
		DepartureDate: p.ReturnDate,
		Travelers:     p.Travelers,
		TripType:      domain.TripOneWay,
	}
}

func findFlight(list []domain.Flight, id string) *domain.Flight {
	for i := range list {
		if list[i].ID == id {
			f := list[i]
			return &f
		}
	}
	return nil
}

// view copies the session into its serializable shape. Callers hold the
// session lock.
func (sess *Session) view() *SessionView {
	return &SessionView{
		ID:            sess.ID,
		State:         sess.State,
		Params:        sess.Params,
		Mode:          sess.Mode,
		Results:       sess.Results,
		ReturnResults: sess.ReturnResults,
		Outbound:      sess.Outbound,
		Return:        sess.Return,
		Booking:       sess.Booking,
	}
}

var _ TripUseCase = (*TripService)(nil)
