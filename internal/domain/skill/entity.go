package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID                   uuid.UUID
	Name                 string
	Category             string
	Description          string
	LearningResources    []LearningResource
	IndustryDemand       *float64
	FutureRelevance      *float64
	AutomationResistance *float64
	Prerequisites        []Prerequisite
	CreatedAt            time.Time
}

type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Prerequisite is a direct dependency edge: SkillID must be learned before
// the owning skill.
type Prerequisite struct {
	SkillID uuid.UUID
	Name    string
}

type Metrics struct {
	SkillID                  uuid.UUID
	LearningResourceUsage    float64
	AssessmentCompletionRate float64
	AverageProficiencyGain   float64
	JobPostingFrequency      int
	SalaryImpact             float64
	IndustryGrowthRate       float64
	AverageTimeToProficiency int
	SuccessRate              float64
	RetentionRate            float64
	RecordedAt               time.Time
}
