package dto

import (
	"time"

	"career-compass/internal/domain/assessment"

	"github.com/google/uuid"
)

type AssessmentResponse struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	SkillID             uuid.UUID  `json:"skill_id"`
	SkillName           string     `json:"skill_name"`
	CurrentLevel        int        `json:"current_level"`
	TargetLevel         *int       `json:"target_level"`
	VerificationStatus  bool       `json:"verification_status"`
	Endorsements        int        `json:"endorsements"`
	PracticeHours       int        `json:"practice_hours"`
	ProjectApplications int        `json:"project_applications"`
	CompletedResources  []string   `json:"completed_resources"`
	AssessmentDate      *time.Time `json:"assessment_date"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewAssessmentResponse(a assessment.Assessment) AssessmentResponse {
	completed := a.CompletedResources
	if completed == nil {
		completed = make([]string, 0)
	}
	return AssessmentResponse{
		ID:                  a.ID,
		UserID:              a.UserID,
		SkillID:             a.SkillID,
		SkillName:           a.SkillName,
		CurrentLevel:        a.CurrentLevel,
		TargetLevel:         a.TargetLevel,
		VerificationStatus:  a.VerificationStatus,
		Endorsements:        a.Endorsements,
		PracticeHours:       a.PracticeHours,
		ProjectApplications: a.ProjectApplications,
		CompletedResources:  completed,
		AssessmentDate:      a.AssessmentDate,
		UpdatedAt:           a.UpdatedAt,
	}
}
