package usecase

import (
	"context"

	"career-compass/internal/domain/user"
	ucuser "career-compass/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
}

var _ UserUsecase = (*ucuser.Service)(nil)

// NewUserUsecase exposes the profile service directly; it has no
// cross-cutting concerns to add.
func NewUserUsecase(users user.Repository) *ucuser.Service {
	return ucuser.NewService(users)
}
