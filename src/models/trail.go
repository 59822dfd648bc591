package models

import "crs/src/types"

// Trail records auditable actions, notably bookings created with validation
// skipped by admin tooling.
type Trail struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	ActorID    uint        `json:"actor_id,omitempty"`
	Action     string      `json:"action,omitempty"`
	Resource   string      `json:"resource,omitempty"`
	ResourceID uint        `json:"resource_id,omitempty"`
	Metadata   types.JSONB `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}
