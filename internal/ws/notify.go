package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventSkillGapUpdated = "skill_gap_updated"

type SkillGapUpdatedEvent struct {
	Type                    string      `json:"type"`
	UserID                  uuid.UUID   `json:"user_id"`
	TargetRoleID            uuid.UUID   `json:"target_role_id"`
	GapCount                int         `json:"gap_count"`
	PrioritySkills          []uuid.UUID `json:"priority_skills"`
	EstimatedCompletionTime int         `json:"estimated_completion_time"`
	Timestamp               string      `json:"timestamp"`
}

// Notifier publishes domain events to websocket subscribers through a Hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifySkillGapUpdated(userID, roleID uuid.UUID, gapCount int, priority []uuid.UUID, estimatedHours int) {
	if n == nil || n.hub == nil {
		return
	}
	if priority == nil {
		priority = make([]uuid.UUID, 0)
	}

	b, err := json.Marshal(SkillGapUpdatedEvent{
		Type:                    EventSkillGapUpdated,
		UserID:                  userID,
		TargetRoleID:            roleID,
		GapCount:                gapCount,
		PrioritySkills:          priority,
		EstimatedCompletionTime: estimatedHours,
		Timestamp:               n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.SendToUser(userID, b)
}
