package jwt

import (
	"errors"
	"time"

	"career-compass/internal/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

// TokenPair is what a successful login, registration or refresh hands out.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

type Service interface {
	IssuePair(userID uuid.UUID, email string) (TokenPair, error)
	ParseAccessToken(tokenString string) (Claims, error)
	ParseRefreshToken(tokenString string) (Claims, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// HMACService signs HS256 tokens. Access and refresh tokens use separate
// secrets so one can never be accepted as the other.
type HMACService struct {
	access  signingKey
	refresh signingKey
	issuer  string

	now func() time.Time
}

func NewHMACServiceFromConfig(cfg config.JWTConfig, issuer string) *HMACService {
	s := NewHMACService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessExpiresIn, cfg.RefreshExpiresIn)
	s.issuer = issuer
	return s
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		access:  signingKey{secret: []byte(accessSecret), ttl: accessExpiresIn},
		refresh: signingKey{secret: []byte(refreshSecret), ttl: refreshExpiresIn},
		now:     time.Now,
	}
}

func (s *HMACService) IssuePair(userID uuid.UUID, email string) (TokenPair, error) {
	if userID == uuid.Nil {
		return TokenPair{}, ErrTokenInvalid
	}
	access, exp, err := s.sign(s.access, TokenTypeAccess, userID, email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.sign(s.refresh, TokenTypeRefresh, userID, "")
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, AccessExpiresAt: exp}, nil
}

func (s *HMACService) ParseAccessToken(tokenString string) (Claims, error) {
	return s.parse(s.access, TokenTypeAccess, tokenString)
}

func (s *HMACService) ParseRefreshToken(tokenString string) (Claims, error) {
	return s.parse(s.refresh, TokenTypeRefresh, tokenString)
}

func (s *HMACService) sign(key signingKey, tokenType string, userID uuid.UUID, email string) (string, time.Time, error) {
	if len(key.secret) == 0 || key.ttl <= 0 {
		return "", time.Time{}, ErrTokenInvalid
	}

	now := s.now().UTC()
	exp := now.Add(key.ttl)
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *HMACService) parse(key signingKey, tokenType string, tokenString string) (Claims, error) {
	if len(key.secret) == 0 || tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}

	var c Claims
	tok, err := jwtlib.NewParser(opts...).ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return key.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != tokenType || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
