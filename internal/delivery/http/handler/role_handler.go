package handler

import (
	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RoleHandler struct {
	uc usecase.RoleUsecase
}

type createRoleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type requiredSkillRequest struct {
	SkillID       uuid.UUID `json:"skill_id"`
	RequiredLevel *int      `json:"required_level"`
}

type setRequiredSkillsRequest struct {
	Skills []requiredSkillRequest `json:"skills"`
}

func NewRoleHandler(uc usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/roles")
	grp.Post("/", h.Create)
	grp.Get("/:role_id", h.Get)
	grp.Get("/:role_id/skills", h.GetRequiredSkills)
	grp.Put("/:role_id/skills", h.SetRequiredSkills)
}

func (h *RoleHandler) Create(c fiber.Ctx) error {
	var req createRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateRole(c.Context(), usecase.CreateRoleInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Role created successfully", dto.NewRoleResponse(created))
}

func (h *RoleHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	r, err := h.uc.GetRole(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoleResponse(r))
}

func (h *RoleHandler) GetRequiredSkills(c fiber.Ctx) error {
	id, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	reqs, err := h.uc.GetRequiredSkills(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequiredSkillsResponse(reqs))
}

func (h *RoleHandler) SetRequiredSkills(c fiber.Ctx) error {
	id, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	var req setRequiredSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := make([]usecase.RequirementInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		in = append(in, usecase.RequirementInput{SkillID: s.SkillID, RequiredLevel: s.RequiredLevel})
	}

	reqs, err := h.uc.SetRequiredSkills(c.Context(), id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequiredSkillsResponse(reqs))
}
