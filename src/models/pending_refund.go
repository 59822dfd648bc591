package models

import "crs/src/types"

// PendingRefund is a policy-computed refund withheld for human review,
// created when the amount is neither the full payment nor zero, or when the
// policy requires sign-off.
type PendingRefund struct {
	ID        uint `gorm:"primarykey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id,omitempty"`

	PolicyRefundAmountCents      int64  `json:"policy_refund_amount_cents"`
	Currency                     string `gorm:"default:'USD'" json:"currency,omitempty"`
	AppliedRuleDaysBeforeCheckin uint   `json:"applied_rule_days_before_checkin"`
	AppliedRuleRefundPercentage  uint   `json:"applied_rule_refund_percentage"`
	CancellationReason           string `json:"cancellation_reason,omitempty"`

	Status types.PendingRefundStatus `gorm:"default:'open'" json:"status,omitempty"`
	Notes  string                    `json:"notes,omitempty"`

	Booking Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
