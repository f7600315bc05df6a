package user

import (
	"context"
	"errors"

	"career-compass/internal/domain/user"
	"career-compass/internal/usecase/credentials"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInternal     = errors.New("internal error")
)

// UpdateMeInput carries optional changes; nil fields are left untouched.
type UpdateMeInput struct {
	Email    *string
	Password *string
}

func (in UpdateMeInput) empty() bool {
	return in.Email == nil && in.Password == nil
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return usr.Sanitized(), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if in.empty() {
		return usr.Sanitized(), nil
	}

	if err := apply(&usr, in); err != nil {
		return user.User{}, err
	}

	err = s.users.UpdateUser(ctx, usr)
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		return user.User{}, ErrEmailTaken
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrNotFound
	case err != nil:
		return user.User{}, ErrInternal
	}

	return s.GetMe(ctx, userID)
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, ErrInternal
	}
	return usr, nil
}

func apply(usr *user.User, in UpdateMeInput) error {
	if in.Email != nil {
		email := credentials.NormalizeEmail(*in.Email)
		if email == "" {
			return ErrInvalidInput
		}
		usr.Email = email
	}
	if in.Password != nil {
		if !credentials.IsValidPassword(*in.Password) {
			return ErrInvalidInput
		}
		hash, err := credentials.HashPassword(*in.Password)
		if err != nil {
			return ErrInternal
		}
		usr.PasswordHash = hash
	}
	return nil
}
