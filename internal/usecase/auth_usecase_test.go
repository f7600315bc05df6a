package usecase

import (
	"context"
	"testing"
	"time"

	"career-compass/internal/pkg/jwt"
	ucauth "career-compass/internal/usecase/auth"
	ucuser "career-compass/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth() (*Auth, jwt.Service) {
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	return NewAuthUsecase(newMockUserRepo(), svc, nil), svc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, svc := newTestAuth()
	ctx := context.Background()

	reg, err := uc.Register(ctx, ucauth.RegisterInput{Email: "Dev@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", reg.User.Email)
	assert.Empty(t, reg.User.PasswordHash)

	claims, err := svc.ParseAccessToken(reg.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = uc.Register(ctx, ucauth.RegisterInput{Email: "dev@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	_, err = uc.Login(ctx, ucauth.LoginInput{Email: "dev@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, err = uc.Login(ctx, ucauth.LoginInput{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	logged, err := uc.Login(ctx, ucauth.LoginInput{Email: "dev@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, logged.User.ID)
	assert.Empty(t, logged.User.PasswordHash)

	refreshed, err := uc.Refresh(ctx, reg.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)
	assert.NotEmpty(t, refreshed.Tokens.RefreshToken)
	assert.Equal(t, uuid.Nil, refreshed.User.ID)

	_, err = uc.Refresh(ctx, reg.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_RefreshForDeletedUser(t *testing.T) {
	uc, svc := newTestAuth()
	pair, err := svc.IssuePair(uuid.New(), "gone@example.com")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuth_RefreshRepoFailure(t *testing.T) {
	repo := newMockUserRepo()
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	uc := NewAuthUsecase(repo, svc, nil)

	pair, err := svc.IssuePair(uuid.New(), "")
	require.NoError(t, err)
	repo.err = errDB

	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "nope", Password: "password123"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, err = uc.Register(context.Background(), ucauth.RegisterInput{Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
}

func TestUser_GetMe(t *testing.T) {
	id := uuid.New()
	uc := NewUserUsecase(newMockUserRepo(id))

	me, err := uc.GetMe(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, me.ID)

	_, err = uc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ucuser.ErrNotFound)
}

func TestUser_UpdateMe(t *testing.T) {
	id, other := uuid.New(), uuid.New()
	uc := NewUserUsecase(newMockUserRepo(id, other))
	ctx := context.Background()

	email := "  New@Example.com "
	updated, err := uc.UpdateMe(ctx, id, ucuser.UpdateMeInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)

	taken := other.String() + "@example.com"
	_, err = uc.UpdateMe(ctx, id, ucuser.UpdateMeInput{Email: &taken})
	assert.ErrorIs(t, err, ucuser.ErrEmailTaken)

	short := "short"
	_, err = uc.UpdateMe(ctx, id, ucuser.UpdateMeInput{Password: &short})
	assert.ErrorIs(t, err, ucuser.ErrInvalidInput)

	pw := "a-longer-password"
	updated, err = uc.UpdateMe(ctx, id, ucuser.UpdateMeInput{Password: &pw})
	require.NoError(t, err)
	assert.Empty(t, updated.PasswordHash)

	unchanged, err := uc.UpdateMe(ctx, id, ucuser.UpdateMeInput{})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", unchanged.Email)
}
