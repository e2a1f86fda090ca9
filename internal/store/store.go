package store

import "context"

// Store is the persistence provider: whole collections serialized as JSON
// under a key, loaded verbatim at startup and rewritten on every change.
// Load returns (nil, nil) when the key has never been saved.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Collection keys shared by all backends.
const (
	KeyUsers    = "users"
	KeyRoutes   = "routes"
	KeyFlights  = "flights"
	KeyBookings = "bookings"
	KeyExpenses = "expenses"
)
