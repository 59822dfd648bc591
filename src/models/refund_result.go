package models

import (
	"crs/src/types"

	"github.com/google/uuid"
)

// RefundResult is the durable record of a cancel-and-refund computation,
// keyed by the caller-supplied idempotency token. Replaying a cancellation
// with the same key returns this row instead of recomputing.
type RefundResult struct {
	ID             uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	IdempotencyKey string    `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
	BookingID      uint      `gorm:"index" json:"booking_id,omitempty"`

	Outcome                  types.RefundOutcome `json:"outcome,omitempty"`
	RefundAmountCents        int64               `json:"refund_amount_cents"`
	Currency                 string              `gorm:"default:'USD'" json:"currency,omitempty"`
	AppliedDaysBeforeCheckin uint                `json:"applied_days_before_checkin"`
	AppliedRefundPercentage  uint                `json:"applied_refund_percentage"`
	ProviderRefundID         *string             `json:"provider_refund_id,omitempty"`
	PendingRefundID          *uint               `json:"pending_refund_id,omitempty"`
	Reason                   string              `json:"reason,omitempty"`

	types.Timestamps
}
