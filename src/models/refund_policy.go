package models

import "crs/src/types"

// RefundPolicy is the active cancellation ruleset for a (property, mode)
// scope. Old policies are retired by flipping IsActive, not deleted; at most
// one active policy should exist per scope and boot validation enforces it.
type RefundPolicy struct {
	ID       uint              `gorm:"primarykey" json:"id"`
	Property types.Property    `gorm:"index" json:"property,omitempty"`
	Mode     types.BookingMode `gorm:"index" json:"mode,omitempty"`
	Name     string            `json:"name,omitempty"`
	IsActive bool              `json:"is_active,omitempty"`

	// RequiresReview forces every refund under this policy through the
	// pending-review path regardless of the computed amount.
	RequiresReview bool `json:"requires_review,omitempty"`

	Rules []RefundPolicyRule `json:"rules,omitempty"`

	types.Timestamps
}

// RefundPolicyRule is one band on the days-before-checkin axis.
// DaysBeforeCheckin is the band's exclusive upper bound: a rule with
// threshold 21 covers cancellations made with fewer than 21 days notice that
// no tighter rule claims. Priority breaks ties between equal thresholds,
// higher wins.
type RefundPolicyRule struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	RefundPolicyID    uint   `gorm:"index" json:"refund_policy_id,omitempty"`
	DaysBeforeCheckin uint   `json:"days_before_checkin"`
	RefundPercentage  uint   `json:"refund_percentage"`
	Priority          int    `json:"priority,omitempty"`
	Description       string `json:"description,omitempty"`

	types.Timestamps
}
