package handler

import (
	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/skill"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type createSkillRequest struct {
	Name                 string                   `json:"name"`
	Category             string                   `json:"category"`
	Description          string                   `json:"description"`
	LearningResources    []skill.LearningResource `json:"learning_resources"`
	IndustryDemand       *float64                 `json:"industry_demand"`
	FutureRelevance      *float64                 `json:"future_relevance"`
	AutomationResistance *float64                 `json:"automation_resistance"`
}

type addPrerequisiteRequest struct {
	PrerequisiteID uuid.UUID `json:"prerequisite_id"`
}

type skillMetricsRequest struct {
	LearningResourceUsage    float64 `json:"learning_resource_usage"`
	AssessmentCompletionRate float64 `json:"assessment_completion_rate"`
	AverageProficiencyGain   float64 `json:"average_proficiency_gain"`
	JobPostingFrequency      int     `json:"job_posting_frequency"`
	SalaryImpact             float64 `json:"salary_impact"`
	IndustryGrowthRate       float64 `json:"industry_growth_rate"`
	AverageTimeToProficiency int     `json:"average_time_to_proficiency"`
	SuccessRate              float64 `json:"success_rate"`
	RetentionRate            float64 `json:"retention_rate"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:skill_id", h.Get)
	grp.Post("/:skill_id/prerequisites", h.AddPrerequisite)
	grp.Get("/:skill_id/metrics", h.GetMetrics)
	grp.Put("/:skill_id/metrics", h.PutMetrics)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context(), c.Query("category"))
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	s, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(s))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:                 req.Name,
		Category:             req.Category,
		Description:          req.Description,
		LearningResources:    req.LearningResources,
		IndustryDemand:       req.IndustryDemand,
		FutureRelevance:      req.FutureRelevance,
		AutomationResistance: req.AutomationResistance,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created successfully", dto.NewSkillResponse(created))
}

func (h *SkillHandler) AddPrerequisite(c fiber.Ctx) error {
	id, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	var req addPrerequisiteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.AddPrerequisite(c.Context(), id, req.PrerequisiteID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(updated))
}

func (h *SkillHandler) GetMetrics(c fiber.Ctx) error {
	id, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	m, err := h.uc.GetMetrics(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillMetricsResponse(m))
}

func (h *SkillHandler) PutMetrics(c fiber.Ctx) error {
	id, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	var req skillMetricsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.RecordMetrics(c.Context(), skill.Metrics{
		SkillID:                  id,
		LearningResourceUsage:    req.LearningResourceUsage,
		AssessmentCompletionRate: req.AssessmentCompletionRate,
		AverageProficiencyGain:   req.AverageProficiencyGain,
		JobPostingFrequency:      req.JobPostingFrequency,
		SalaryImpact:             req.SalaryImpact,
		IndustryGrowthRate:       req.IndustryGrowthRate,
		AverageTimeToProficiency: req.AverageTimeToProficiency,
		SuccessRate:              req.SuccessRate,
		RetentionRate:            req.RetentionRate,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillMetricsResponse(m))
}
