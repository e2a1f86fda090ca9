package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/store"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) error
}

type StoreUserRepository struct {
	col *collection[domain.User]
}

func NewUserRepository(ctx context.Context, s store.Store, log *zap.SugaredLogger) (*StoreUserRepository, error) {
	col, err := newCollection[domain.User](ctx, s, store.KeyUsers, log)
	if err != nil {
		return nil, err
	}
	return &StoreUserRepository{col: col}, nil
}

func (r *StoreUserRepository) List(_ context.Context) ([]domain.User, error) {
	return r.col.snapshot(), nil
}

func (r *StoreUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.col.snapshot() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.col.snapshot() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreUserRepository) Create(ctx context.Context, user domain.User) error {
	return r.col.mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		for _, u := range items {
			if u.Email == user.Email {
				return nil, domain.Validationf("user with email %s already exists", user.Email)
			}
		}
		return append(items, user), nil
	})
}

var _ UserRepository = (*StoreUserRepository)(nil)
