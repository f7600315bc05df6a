package dto

import (
	"time"

	"career-compass/internal/domain/user"
	"career-compass/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

type AuthResponse struct {
	User                 *UserResponse `json:"user,omitempty"`
	AccessToken          string        `json:"access_token"`
	RefreshToken         string        `json:"refresh_token"`
	AccessTokenExpiresAt time.Time     `json:"access_token_expires_at"`
}

// NewAuthResponse omits the user block for token refreshes.
func NewAuthResponse(s usecase.Session) AuthResponse {
	resp := AuthResponse{
		AccessToken:          s.Tokens.AccessToken,
		RefreshToken:         s.Tokens.RefreshToken,
		AccessTokenExpiresAt: s.Tokens.AccessExpiresAt,
	}
	if s.User.ID != uuid.Nil {
		u := NewUserResponse(s.User)
		resp.User = &u
	}
	return resp
}
