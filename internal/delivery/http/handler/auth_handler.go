package handler

import (
	"errors"
	"strings"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"
	ucauth "career-compass/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	in, err := bindCredentials(c)
	if err != nil {
		return err
	}

	s, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAuthResponse(s))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	in, err := bindCredentials(c)
	if err != nil {
		return err
	}

	s, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAuthResponse(s))
}

// Refresh reads the refresh token from the JSON body, falling back to the
// Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get("Authorization"))
	}

	s, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAuthResponse(s))
}

func bindCredentials(c fiber.Ctx) (ucauth.Credentials, error) {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return ucauth.Credentials{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return ucauth.Credentials{Email: req.Email, Password: req.Password}, nil
}

func mapAuthUsecaseError(err error) error {
	status, msg := fiber.StatusInternalServerError, response.MessageInternalServerError

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		status, msg = fiber.StatusConflict, "Email already registered"
	case errors.Is(err, ucauth.ErrInvalidInput):
		status, msg = fiber.StatusBadRequest, "Bad request"
	case errors.Is(err, ucauth.ErrInvalidCredentials), errors.Is(err, usecase.ErrUnauthorized):
		status, msg = fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		status, msg = fiber.StatusUnauthorized, "Refresh token expired"
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		status, msg = fiber.StatusUnauthorized, "Invalid refresh token"
	}
	return middleware.NewAppError(status, msg, nil, err)
}
