package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/logger"
	"github.com/skybook/skybook/internal/store"
)

// failingStore accepts loads but rejects every save.
type failingStore struct {
	*store.MemoryStore
}

func (s *failingStore) Save(_ context.Context, _ string, _ []byte) error {
	return errors.New("disk full")
}

func TestNewCollection_loadsPersistedItems(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Seed(store.KeyRoutes, []byte(`[{"id":"r1","origin":"OSL","destination":"BGO","basePrice":10000}]`))

	repo, err := NewRouteRepository(ctx, st, logger.NewNop())
	assert.NoError(t, err)

	routes, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, routes, 1)
	assert.Equal(t, "r1", routes[0].ID)
}

func TestNewCollection_resetsCorruptedJSON(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Seed(store.KeyRoutes, []byte(`{"not":"an array`))

	repo, err := NewRouteRepository(ctx, st, logger.NewNop())
	assert.NoError(t, err)

	routes, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, routes)
}

func TestMutate_failedSaveLeavesItemsUntouched(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{store.NewMemoryStore()}

	repo, err := NewRouteRepository(ctx, st, logger.NewNop())
	assert.NoError(t, err)

	err = repo.Create(ctx, domain.Route{ID: "r1", Origin: "OSL", Destination: "BGO"})
	assert.Error(t, err)

	routes, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, routes)
}

func TestBookingRepository_setStatus(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	repo, err := NewBookingRepository(ctx, st, logger.NewNop())
	assert.NoError(t, err)

	err = repo.Create(ctx, domain.Booking{
		ID:            "b1",
		BookingStatus: domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	})
	assert.NoError(t, err)

	// status only
	updated, err := repo.SetStatus(ctx, "b1", domain.BookingStatusConfirmed, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.BookingStatus)
	assert.Equal(t, domain.PaymentStatusPending, updated.PaymentStatus)

	// status pair
	paid := domain.PaymentStatusPaid
	updated, err = repo.SetStatus(ctx, "b1", domain.BookingStatusConfirmed, &paid)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)

	_, err = repo.SetStatus(ctx, "missing", domain.BookingStatusConfirmed, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_rejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	repo, err := NewUserRepository(ctx, st, logger.NewNop())
	assert.NoError(t, err)

	err = repo.Create(ctx, domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
	assert.NoError(t, err)

	err = repo.Create(ctx, domain.User{ID: "u2", Name: "Other", Email: "alice@example.com"})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
