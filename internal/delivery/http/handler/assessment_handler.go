package handler

import (
	"time"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

type upsertAssessmentRequest struct {
	UserID              *uuid.UUID `json:"user_id"`
	SkillID             uuid.UUID  `json:"skill_id"`
	CurrentLevel        int        `json:"current_level"`
	TargetLevel         *int       `json:"target_level"`
	VerificationStatus  bool       `json:"verification_status"`
	Endorsements        int        `json:"endorsements"`
	PracticeHours       int        `json:"practice_hours"`
	ProjectApplications int        `json:"project_applications"`
	CompletedResources  []string   `json:"completed_resources"`
	AssessmentDate      *time.Time `json:"assessment_date"`
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/assessments")
	grp.Post("/", h.Upsert)
	grp.Get("/:user_id", h.List)
	grp.Get("/:user_id/:skill_id", h.Get)
}

func (h *AssessmentHandler) List(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListAssessments(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.AssessmentResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewAssessmentResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}
	skillID, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	a, err := h.uc.GetAssessment(c.Context(), userID, skillID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentResponse(a))
}

// Upsert writes the assessment for the authenticated user. A user_id in the
// body must match the caller.
func (h *AssessmentHandler) Upsert(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req upsertAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.UserID != nil && *req.UserID != userID {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}

	saved, err := h.uc.UpsertAssessment(c.Context(), userID, usecase.UpsertAssessmentInput{
		SkillID:             req.SkillID,
		CurrentLevel:        req.CurrentLevel,
		TargetLevel:         req.TargetLevel,
		VerificationStatus:  req.VerificationStatus,
		Endorsements:        req.Endorsements,
		PracticeHours:       req.PracticeHours,
		ProjectApplications: req.ProjectApplications,
		CompletedResources:  req.CompletedResources,
		AssessmentDate:      req.AssessmentDate,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentResponse(saved))
}
