package dto

import (
	"time"

	"career-compass/internal/domain/role"

	"github.com/google/uuid"
)

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRoleResponse(r role.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Title: r.Title, Description: r.Description, CreatedAt: r.CreatedAt}
}

// RequiredSkillResponse leaves required_level null when the role relies on
// the default level.
type RequiredSkillResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	Category      string    `json:"category"`
	RequiredLevel *int      `json:"required_level"`
}

func NewRequiredSkillsResponse(reqs []role.Requirement) []RequiredSkillResponse {
	res := make([]RequiredSkillResponse, 0, len(reqs))
	for _, r := range reqs {
		res = append(res, RequiredSkillResponse{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			Category:      r.Category,
			RequiredLevel: r.RequiredLevel,
		})
	}
	return res
}
