package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/repository"
)

// Service issues opaque session tokens against the user collection. This
// is demo-grade auth: the login check is an email lookup and tokens live
// in memory until logout or restart.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]string // token -> user id

	users    repository.UserRepository
	newToken func() string
	log      *zap.SugaredLogger
}

func NewService(users repository.UserRepository, newToken func() string, log *zap.SugaredLogger) *Service {
	return &Service{
		sessions: make(map[string]string),
		users:    users,
		newToken: newToken,
		log:      log,
	}
}

// Login looks the user up by email and issues a fresh token. The password
// check only applies to users that carry one; demo accounts do not.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, domain.Validationf("email is required")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user.Password != "" && user.Password != password {
		return "", nil, domain.ErrAuthRequired
	}

	token := s.newToken()
	s.mu.Lock()
	s.sessions[token] = user.ID
	s.mu.Unlock()

	s.log.Infow("user logged in", "user", user.ID)
	return token, user, nil
}

// Current resolves a token back to its user.
func (s *Service) Current(ctx context.Context, token string) (*domain.User, error) {
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrAuthRequired
	}
	return s.users.GetByID(ctx, userID)
}

// Logout drops the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Service) Register(ctx context.Context, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, domain.Validationf("name and email are required")
	}
	user := domain.User{
		ID:    s.newToken(),
		Name:  name,
		Email: email,
		Role:  domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}
