package handler

import (
	"strings"

	"career-compass/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

// selfParam parses the :user_id path parameter and requires it to be the
// authenticated user.
func selfParam(c fiber.Ctx) (uuid.UUID, error) {
	me, err := currentUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return uuid.Nil, err
	}
	if userID != me {
		return uuid.Nil, middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
	return userID, nil
}
