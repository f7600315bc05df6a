package dto

import (
	"time"

	"career-compass/internal/domain/gap"

	"github.com/google/uuid"
)

type GapAnalysisResponse struct {
	ID                      uuid.UUID         `json:"id"`
	UserID                  uuid.UUID         `json:"user_id"`
	TargetRoleID            uuid.UUID         `json:"target_role_id"`
	GapAnalysis             []gap.Gap         `json:"gap_analysis"`
	PrioritySkills          []uuid.UUID       `json:"priority_skills"`
	RecommendedPath         []gap.PathEntry   `json:"recommended_path"`
	EstimatedCompletionTime int               `json:"estimated_completion_time"`
	CompletionPercentage    float64           `json:"completion_percentage"`
	TimeInvested            int               `json:"time_invested"`
	MilestoneAchievements   []gap.Achievement `json:"milestone_achievements"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
}

func NewGapAnalysisResponse(r gap.Record) GapAnalysisResponse {
	res := GapAnalysisResponse{
		ID:                      r.ID,
		UserID:                  r.UserID,
		TargetRoleID:            r.TargetRoleID,
		GapAnalysis:             r.GapAnalysis,
		PrioritySkills:          r.PrioritySkills,
		RecommendedPath:         r.RecommendedPath,
		EstimatedCompletionTime: r.EstimatedCompletionTime,
		CompletionPercentage:    r.CompletionPercentage,
		TimeInvested:            r.TimeInvested,
		MilestoneAchievements:   r.MilestoneAchievements,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
	if res.GapAnalysis == nil {
		res.GapAnalysis = make([]gap.Gap, 0)
	}
	if res.PrioritySkills == nil {
		res.PrioritySkills = make([]uuid.UUID, 0)
	}
	if res.RecommendedPath == nil {
		res.RecommendedPath = make([]gap.PathEntry, 0)
	}
	if res.MilestoneAchievements == nil {
		res.MilestoneAchievements = make([]gap.Achievement, 0)
	}
	return res
}

type LearningPathResponse struct {
	LearningPath            []gap.PathEntry `json:"learning_path"`
	EstimatedCompletionTime int             `json:"estimated_completion_time"`
	PrioritySkills          []uuid.UUID     `json:"priority_skills"`
}

func NewLearningPathResponse(path []gap.PathEntry, hours int, priority []uuid.UUID) LearningPathResponse {
	if path == nil {
		path = make([]gap.PathEntry, 0)
	}
	if priority == nil {
		priority = make([]uuid.UUID, 0)
	}
	return LearningPathResponse{LearningPath: path, EstimatedCompletionTime: hours, PrioritySkills: priority}
}
