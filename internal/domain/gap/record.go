package gap

import (
	"time"

	"github.com/google/uuid"
)

// Record is the stored analysis for one (user, target role) pair. Analysis
// fields are regenerated on every run; progress fields are kept.
type Record struct {
	ID                      uuid.UUID
	UserID                  uuid.UUID
	TargetRoleID            uuid.UUID
	GapAnalysis             []Gap
	PrioritySkills          []uuid.UUID
	RecommendedPath         []PathEntry
	EstimatedCompletionTime int
	CompletionPercentage    float64
	TimeInvested            int
	MilestoneAchievements   []Achievement
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type Achievement struct {
	SkillID    uuid.UUID `json:"skill_id"`
	Level      int       `json:"level"`
	AchievedAt time.Time `json:"achieved_at"`
}

// NewRecord builds the record for a fresh analysis result.
func NewRecord(userID, roleID uuid.UUID, res Result) Record {
	return Record{
		UserID:                  userID,
		TargetRoleID:            roleID,
		GapAnalysis:             res.GapAnalysis,
		PrioritySkills:          res.PrioritySkills,
		RecommendedPath:         res.RecommendedPath,
		EstimatedCompletionTime: res.EstimatedCompletionHours,
		MilestoneAchievements:   make([]Achievement, 0),
	}
}

// CompletionPercentage is invested/estimated as a percentage capped at 100.
// A zero estimate yields 0.
func CompletionPercentage(invested, estimated int) float64 {
	if estimated <= 0 || invested <= 0 {
		return 0
	}
	pct := float64(invested) / float64(estimated) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
