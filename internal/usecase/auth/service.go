package auth

import (
	"context"
	"errors"

	"career-compass/internal/domain/user"
	"career-compass/internal/usecase/credentials"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

// Credentials is the payload of both registration and login.
type Credentials struct {
	Email    string
	Password string
}

type (
	RegisterInput = Credentials
	LoginInput    = Credentials
)

// Service owns account creation and password verification. Token issuance
// lives one layer up.
type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := credentials.NormalizeEmail(in.Email)
	if email == "" || !credentials.IsValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	id := uuid.New()
	err = s.users.CreateUser(ctx, user.User{ID: id, Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		return user.User{}, ErrEmailAlreadyRegistered
	case err != nil:
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created.Sanitized(), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := credentials.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return user.User{}, ErrInternal
	}
	if !credentials.CheckPassword(u.PasswordHash, in.Password) {
		return user.User{}, ErrInvalidCredentials
	}
	return u.Sanitized(), nil
}
