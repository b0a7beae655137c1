package teacher

import (
	"context"
	"errors"
	"strings"

	"github.com/Piyush-Inovation/ClassSnap/internal/auth"
	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

// ErrInvalidCredentials is returned on any login failure. It deliberately does
// not reveal whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, t *model.Teacher) error
	GetByUsername(ctx context.Context, username string) (*model.Teacher, error)
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
}

// Service implements login and teacher registration over a Store.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Login verifies a username/password pair against the stored bcrypt hash.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Teacher, error) {
	t, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if t == nil || !auth.CheckPassword(t.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return t, nil
}

// Register creates a new teacher account. Callers must already be
// authenticated; that is enforced at the route level.
func (s *Service) Register(ctx context.Context, username, password, name, email string) (*model.Teacher, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || name == "" || password == "" {
		return nil, model.Validationf("username, password and name are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, model.Validationf("password must be at least %d characters", auth.MinPasswordLen)
		}
		return nil, err
	}

	t := &model.Teacher{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Email:        strings.TrimSpace(email),
	}
	if err := s.store.Create(ctx, t); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, model.Validationf("username already exists")
		}
		return nil, err
	}
	return t, nil
}

// GetByID resolves a teacher by id; nil means the account no longer exists.
// This also satisfies auth.TeacherLookup for the middleware.
func (s *Service) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	return s.store.GetByID(ctx, id)
}
