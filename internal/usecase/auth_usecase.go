package usecase

import (
	"context"
	"errors"

	"career-compass/internal/domain/user"
	"career-compass/internal/pkg/jwt"
	ucauth "career-compass/internal/usecase/auth"

	"go.uber.org/zap"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Session is an authenticated user plus a freshly issued token pair. User
// is zero on refresh.
type Session struct {
	User   user.User
	Tokens jwt.TokenPair
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
}

type Auth struct {
	accounts *ucauth.Service
	users    user.Repository
	tokens   jwt.Service
	log      *zap.Logger
}

func NewAuthUsecase(users user.Repository, tokens jwt.Service, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{accounts: ucauth.NewService(users), users: users, tokens: tokens, log: log}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.accounts.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	u.log.Info("user registered", zap.String("user_id", usr.ID.String()))
	return u.issue(usr, true)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.accounts.Login(ctx, in)
	if err != nil {
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			u.log.Debug("login rejected")
		}
		return Session{}, err
	}
	return u.issue(usr, true)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrUnauthorized
	}

	claims, err := u.tokens.ParseRefreshToken(refreshToken)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Session{}, ErrRefreshTokenExpired
	}
	if err != nil {
		return Session{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return Session{}, ErrInvalidRefreshToken
	}
	if err != nil {
		u.log.Error("load user for refresh", zap.Error(err))
		return Session{}, ErrInternal
	}
	return u.issue(usr, false)
}

func (u *Auth) issue(usr user.User, withUser bool) (Session, error) {
	pair, err := u.tokens.IssuePair(usr.ID, usr.Email)
	if err != nil {
		u.log.Error("issue tokens", zap.String("user_id", usr.ID.String()), zap.Error(err))
		return Session{}, ErrInternal
	}
	s := Session{Tokens: pair}
	if withUser {
		s.User = usr.Sanitized()
	}
	return s, nil
}
