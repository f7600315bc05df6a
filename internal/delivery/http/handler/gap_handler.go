package handler

import (
	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/gap"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

type recordProgressRequest struct {
	HoursInvested int               `json:"hours_invested"`
	Achievements  []gap.Achievement `json:"milestone_achievements"`
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/gap-analysis")
	grp.Get("/:user_id/:role_id", h.Analyze)
	grp.Get("/:user_id/:role_id/saved", h.GetSaved)
	grp.Put("/:user_id/:role_id/progress", h.RecordProgress)

	r.Get("/learning-path/:user_id/:role_id", h.LearningPath)
}

// Analyze recomputes the gap analysis and replaces the stored row.
func (h *GapHandler) Analyze(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}
	roleID, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Analyze(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapAnalysisResponse(rec))
}

func (h *GapHandler) GetSaved(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}
	roleID, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	rec, err := h.uc.GetSavedGap(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapAnalysisResponse(rec))
}

func (h *GapHandler) RecordProgress(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}
	roleID, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	var req recordProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.RecordProgress(c.Context(), userID, roleID, usecase.ProgressInput{
		HoursInvested: req.HoursInvested,
		Achievements:  req.Achievements,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapAnalysisResponse(rec))
}

func (h *GapHandler) LearningPath(c fiber.Ctx) error {
	userID, err := selfParam(c)
	if err != nil {
		return err
	}
	roleID, err := uuidParam(c, "role_id")
	if err != nil {
		return err
	}

	lp, err := h.uc.LearningPath(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewLearningPathResponse(lp.LearningPath, lp.EstimatedCompletionTime, lp.PrioritySkills))
}
