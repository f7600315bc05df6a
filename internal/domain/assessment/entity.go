package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is a user's self- or peer-assessed proficiency in one skill.
// There is at most one per (UserID, SkillID).
type Assessment struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	SkillID             uuid.UUID
	SkillName           string
	CurrentLevel        int
	TargetLevel         *int
	VerificationStatus  bool
	Endorsements        int
	PracticeHours       int
	ProjectApplications int
	CompletedResources  []string
	AssessmentDate      *time.Time
	UpdatedAt           time.Time
}
