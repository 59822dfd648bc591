package engine

import (
	"testing"

	"crs/src/models"
	"crs/src/types"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func rulesFixture() []models.PricingRule {
	return []models.PricingRule{
		{ID: 1, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 5000, Currency: "USD"},                                          // property-wide
		{ID: 2, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 6000, Currency: "USD", SeasonID: uintPtr(9)},                    // property + season
		{ID: 3, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 7000, Currency: "USD", RoomCategoryID: uintPtr(3)},              // category
		{ID: 4, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 8000, Currency: "USD", RoomCategoryID: uintPtr(3), SeasonID: uintPtr(9)}, // category + season
		{ID: 5, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 9000, Currency: "USD", RoomID: uintPtr(7)},                      // room
		{ID: 6, Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 9900, Currency: "USD", RoomID: uintPtr(7), SeasonID: uintPtr(9)}, // room + season
	}
}

func TestPickPricingRuleSpecificity(t *testing.T) {
	rules := rulesFixture()

	// full ladder available: room + season wins
	r := PickPricingRule(rules, uintPtr(7), uintPtr(3), 9)
	assert.Equal(t, uint(6), r.ID)

	// other season: room rule without season scope wins
	r = PickPricingRule(rules, uintPtr(7), uintPtr(3), 11)
	assert.Equal(t, uint(5), r.ID)

	// different room, same category: category + season
	r = PickPricingRule(rules, uintPtr(8), uintPtr(3), 9)
	assert.Equal(t, uint(4), r.ID)

	// different room and category: property + season
	r = PickPricingRule(rules, uintPtr(8), uintPtr(4), 9)
	assert.Equal(t, uint(2), r.ID)

	// nothing scoped matches: property-wide fallback
	r = PickPricingRule(rules, uintPtr(8), uintPtr(4), 11)
	assert.Equal(t, uint(1), r.ID)
}

func TestPickPricingRuleOrderIndependent(t *testing.T) {
	rules := rulesFixture()
	reversed := make([]models.PricingRule, 0, len(rules))
	for i := len(rules) - 1; i >= 0; i-- {
		reversed = append(reversed, rules[i])
	}
	a := PickPricingRule(rules, uintPtr(7), uintPtr(3), 9)
	b := PickPricingRule(reversed, uintPtr(7), uintPtr(3), 9)
	assert.Equal(t, a.ID, b.ID)
}

func TestPickPricingRuleNoMatch(t *testing.T) {
	rules := []models.PricingRule{
		{ID: 1, RoomID: uintPtr(3), AmountCents: 5000},
	}
	assert.Nil(t, PickPricingRule(rules, uintPtr(7), nil, 9))
	assert.Nil(t, PickPricingRule(nil, uintPtr(7), nil, 9))
}

func TestComputeStayPricePerPersonPerNight(t *testing.T) {
	rule := &models.PricingRule{Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 5000, Currency: "USD"}
	room := &models.Room{CapacityMax: 2}

	// 2 guests x 3 nights x $50
	total, err := ComputeStayPrice(rule, room, 2, 0, 3)
	assert.Nil(t, err)
	assert.Equal(t, int64(30000), total.Amount)
	assert.Equal(t, "USD", total.Currency)
}

func TestComputeStayPriceMinBillableOccupancy(t *testing.T) {
	rule := &models.PricingRule{Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 5000, Currency: "USD"}
	room := &models.Room{CapacityMax: 4, MinBillableOccupancy: 2}

	// 1 guest billed as 2
	total, err := ComputeStayPrice(rule, room, 1, 0, 2)
	assert.Nil(t, err)
	assert.Equal(t, int64(20000), total.Amount)
}

func TestComputeStayPriceChildrenRate(t *testing.T) {
	rule := &models.PricingRule{
		Unit:                types.UNIT_PER_PERSON_PER_NIGHT,
		AmountCents:         5000,
		ChildrenAmountCents: int64Ptr(2500),
		Currency:            "USD",
	}
	room := &models.Room{CapacityMax: 4}

	// 2 adults + 1 child, 2 nights: (2x5000 + 1x2500) x 2
	total, err := ComputeStayPrice(rule, room, 3, 1, 2)
	assert.Nil(t, err)
	assert.Equal(t, int64(25000), total.Amount)
}

func TestComputeStayPricePerGuestPerDay(t *testing.T) {
	rule := &models.PricingRule{Unit: types.UNIT_PER_GUEST_PER_DAY, AmountCents: 1500, Currency: "USD"}
	total, err := ComputeStayPrice(rule, nil, 10, 0, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(15000), total.Amount)
}

func TestComputeStayPriceBuyoutFixed(t *testing.T) {
	rule := &models.PricingRule{Unit: types.UNIT_BUYOUT_FIXED, AmountCents: 120000, Currency: "USD"}
	// guest count must not matter
	a, err := ComputeStayPrice(rule, nil, 8, 0, 2)
	assert.Nil(t, err)
	b, err := ComputeStayPrice(rule, nil, 25, 0, 2)
	assert.Nil(t, err)
	assert.Equal(t, a.Amount, b.Amount)
	assert.Equal(t, int64(240000), a.Amount)
}

// Identical inputs always produce the identical price.
func TestComputeStayPriceDeterministic(t *testing.T) {
	rule := &models.PricingRule{Unit: types.UNIT_PER_PERSON_PER_NIGHT, AmountCents: 5000, Currency: "USD"}
	room := &models.Room{CapacityMax: 4}
	first, err := ComputeStayPrice(rule, room, 2, 0, 3)
	assert.Nil(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputeStayPrice(rule, room, 2, 0, 3)
		assert.Nil(t, err)
		assert.True(t, first.Equal(again))
	}
}
