package role

import (
	"time"

	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
}

// Requirement links a role to a skill it needs. A nil RequiredLevel means the
// analyzer's default level applies.
type Requirement struct {
	RoleID            uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	Category          string
	RequiredLevel     *int
	Position          int
	Prerequisites     []skill.Prerequisite
	LearningResources []skill.LearningResource
}
