package dto

import (
	"time"

	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
)

type PrerequisiteResponse struct {
	SkillID uuid.UUID `json:"skill_id"`
	Name    string    `json:"name"`
}

type SkillResponse struct {
	ID                   uuid.UUID                `json:"id"`
	Name                 string                   `json:"name"`
	Category             string                   `json:"category"`
	Description          string                   `json:"description"`
	LearningResources    []skill.LearningResource `json:"learning_resources"`
	IndustryDemand       *float64                 `json:"industry_demand"`
	FutureRelevance      *float64                 `json:"future_relevance"`
	AutomationResistance *float64                 `json:"automation_resistance"`
	Prerequisites        []PrerequisiteResponse   `json:"prerequisites"`
	CreatedAt            time.Time                `json:"created_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	res := SkillResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		Category:             s.Category,
		Description:          s.Description,
		LearningResources:    s.LearningResources,
		IndustryDemand:       s.IndustryDemand,
		FutureRelevance:      s.FutureRelevance,
		AutomationResistance: s.AutomationResistance,
		Prerequisites:        make([]PrerequisiteResponse, 0, len(s.Prerequisites)),
		CreatedAt:            s.CreatedAt,
	}
	if res.LearningResources == nil {
		res.LearningResources = make([]skill.LearningResource, 0)
	}
	for _, p := range s.Prerequisites {
		res.Prerequisites = append(res.Prerequisites, PrerequisiteResponse{SkillID: p.SkillID, Name: p.Name})
	}
	return res
}

type SkillMetricsResponse struct {
	SkillID                  uuid.UUID `json:"skill_id"`
	LearningResourceUsage    float64   `json:"learning_resource_usage"`
	AssessmentCompletionRate float64   `json:"assessment_completion_rate"`
	AverageProficiencyGain   float64   `json:"average_proficiency_gain"`
	JobPostingFrequency      int       `json:"job_posting_frequency"`
	SalaryImpact             float64   `json:"salary_impact"`
	IndustryGrowthRate       float64   `json:"industry_growth_rate"`
	AverageTimeToProficiency int       `json:"average_time_to_proficiency"`
	SuccessRate              float64   `json:"success_rate"`
	RetentionRate            float64   `json:"retention_rate"`
	RecordedAt               time.Time `json:"recorded_at"`
}

func NewSkillMetricsResponse(m skill.Metrics) SkillMetricsResponse {
	return SkillMetricsResponse{
		SkillID:                  m.SkillID,
		LearningResourceUsage:    m.LearningResourceUsage,
		AssessmentCompletionRate: m.AssessmentCompletionRate,
		AverageProficiencyGain:   m.AverageProficiencyGain,
		JobPostingFrequency:      m.JobPostingFrequency,
		SalaryImpact:             m.SalaryImpact,
		IndustryGrowthRate:       m.IndustryGrowthRate,
		AverageTimeToProficiency: m.AverageTimeToProficiency,
		SuccessRate:              m.SuccessRate,
		RetentionRate:            m.RetentionRate,
		RecordedAt:               m.RecordedAt,
	}
}
