package engine

import (
	"testing"
	"time"

	"crs/src/models"
	"crs/src/money"

	"github.com/stretchr/testify/assert"
)

func buyoutPolicy() *models.RefundPolicy {
	return &models.RefundPolicy{
		ID:       1,
		IsActive: true,
		Rules: []models.RefundPolicyRule{
			{ID: 1, DaysBeforeCheckin: 14, RefundPercentage: 0},
			{ID: 2, DaysBeforeCheckin: 21, RefundPercentage: 50},
		},
	}
}

func TestPickRefundRuleBands(t *testing.T) {
	rules := buyoutPolicy().Rules

	// 18 days out: at least 14 days notice given, 21 not reached
	r := PickRefundRule(rules, 18)
	assert.Equal(t, uint(21), r.DaysBeforeCheckin)
	assert.Equal(t, uint(50), r.RefundPercentage)

	// 5 days out: inside the tightest band
	r = PickRefundRule(rules, 5)
	assert.Equal(t, uint(14), r.DaysBeforeCheckin)
	assert.Equal(t, uint(0), r.RefundPercentage)

	// past checkin
	r = PickRefundRule(rules, -2)
	assert.Equal(t, uint(14), r.DaysBeforeCheckin)

	// 30 days out beats every threshold: no band, full refund
	assert.Nil(t, PickRefundRule(rules, 30))

	// exactly on a threshold counts as having given that much notice
	r = PickRefundRule(rules, 14)
	assert.Equal(t, uint(21), r.DaysBeforeCheckin)
	assert.Nil(t, PickRefundRule(rules, 21))
}

func TestPickRefundRulePriorityTieBreak(t *testing.T) {
	rules := []models.RefundPolicyRule{
		{ID: 1, DaysBeforeCheckin: 14, RefundPercentage: 10, Priority: 1},
		{ID: 2, DaysBeforeCheckin: 14, RefundPercentage: 25, Priority: 5},
	}
	r := PickRefundRule(rules, 7)
	assert.Equal(t, uint(25), r.RefundPercentage)
}

// Cancelling earlier never yields a worse refund than cancelling later.
func TestRefundMonotonicity(t *testing.T) {
	policy := buyoutPolicy()
	payment := money.New(100000, "USD")
	prev := int64(-1)
	for days := 0; days <= 40; days++ {
		comp := ComputeRefund(policy, payment, days)
		assert.GreaterOrEqualf(t, comp.Amount.Amount, prev, "refund regressed at %d days", days)
		prev = comp.Amount.Amount
	}
}

func TestComputeRefundAutoProcessable(t *testing.T) {
	policy := buyoutPolicy()
	payment := money.New(100000, "USD")

	// 50% is neither full nor zero: needs review
	comp := ComputeRefund(policy, payment, 18)
	assert.Equal(t, int64(50000), comp.Amount.Amount)
	assert.Equal(t, uint(50), comp.Percentage)
	assert.False(t, comp.AutoProcessable)

	// 0%: auto-processable no-refund
	comp = ComputeRefund(policy, payment, 5)
	assert.True(t, comp.Amount.IsZero())
	assert.True(t, comp.AutoProcessable)

	// beyond every band: full refund, auto-processable
	comp = ComputeRefund(policy, payment, 30)
	assert.Equal(t, payment.Amount, comp.Amount.Amount)
	assert.Equal(t, uint(100), comp.Percentage)
	assert.True(t, comp.AutoProcessable)
}

func TestComputeRefundRequiresReviewOverride(t *testing.T) {
	policy := buyoutPolicy()
	policy.RequiresReview = true
	payment := money.New(100000, "USD")

	comp := ComputeRefund(policy, payment, 30)
	assert.Equal(t, payment.Amount, comp.Amount.Amount)
	assert.False(t, comp.AutoProcessable)
}

func TestComputeRefundRoundsHalfUp(t *testing.T) {
	policy := &models.RefundPolicy{
		Rules: []models.RefundPolicyRule{
			{DaysBeforeCheckin: 21, RefundPercentage: 50},
		},
	}
	comp := ComputeRefund(policy, money.New(101, "USD"), 10)
	assert.Equal(t, int64(51), comp.Amount.Amount)
}

func TestDaysBeforeCheckin(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	assert.Nil(t, err)

	checkin := date(2026, time.September, 20)

	// Sept 2, 23:30 UTC is still Sept 2 in Los Angeles: 18 days
	cancelledAt := time.Date(2026, time.September, 2, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 18, DaysBeforeCheckin(checkin, cancelledAt, loc))

	// Sept 3, 05:30 UTC is Sept 2 local as well
	cancelledAt = time.Date(2026, time.September, 3, 5, 30, 0, 0, time.UTC)
	assert.Equal(t, 18, DaysBeforeCheckin(checkin, cancelledAt, loc))

	// same local day as checkin
	cancelledAt = time.Date(2026, time.September, 20, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBeforeCheckin(checkin, cancelledAt, loc))
}
