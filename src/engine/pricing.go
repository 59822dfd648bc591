package engine

import (
	"fmt"

	"crs/src/models"
	"crs/src/money"
	"crs/src/types"

	"gorm.io/gorm"
)

// PickPricingRule resolves the most specific applicable rule. The ladder,
// from most to least specific: room + season, room, category + season,
// category, property + season, property. Nil scope fields are wildcards.
// Insertion order never changes the outcome; equal-specificity duplicates
// fall back to load order.
func PickPricingRule(rules []models.PricingRule, roomID *uint, roomCategoryID *uint, seasonID uint) *models.PricingRule {
	var best *models.PricingRule
	bestScore := -1
	for i := range rules {
		r := &rules[i]
		var score int
		switch {
		case r.RoomID != nil:
			if roomID == nil || *r.RoomID != *roomID {
				continue
			}
			score = 4
		case r.RoomCategoryID != nil:
			if roomCategoryID == nil || *r.RoomCategoryID != *roomCategoryID {
				continue
			}
			score = 2
		default:
			score = 0
		}
		if r.SeasonID != nil {
			if *r.SeasonID != seasonID {
				continue
			}
			score++
		}
		if score > bestScore {
			best = r
			bestScore = score
		}
	}
	return best
}

// PropertyPricingRules loads all rules for (property, mode) through the
// config cache; resolution happens in PickPricingRule, not in SQL.
func PropertyPricingRules(tx *gorm.DB, property types.Property, mode types.BookingMode) ([]models.PricingRule, error) {
	key := PricingRulesCacheKey(property, mode)
	if v, ok := Cache.Get(key); ok {
		return v.([]models.PricingRule), nil
	}
	var rules []models.PricingRule
	err := tx.
		Model(&models.PricingRule{}).
		Where(&models.PricingRule{Property: property, Mode: mode}).
		Order("id asc").
		Find(&rules).
		Error
	if err != nil {
		return nil, err
	}
	Cache.Put(key, rules)
	return rules, nil
}

// ResolvePricingRule finds the rule for a candidate stay. No match is a
// configuration gap: it surfaces as ErrNoPricingRuleFound for operator
// alerting, never a silent zero price.
func ResolvePricingRule(tx *gorm.DB, property types.Property, mode types.BookingMode, room *models.Room, seasonID uint) (*models.PricingRule, error) {
	rules, err := PropertyPricingRules(tx, property, mode)
	if err != nil {
		return nil, err
	}
	var roomID, categoryID *uint
	if room != nil {
		roomID = &room.ID
		categoryID = &room.RoomCategoryID
	}
	rule := PickPricingRule(rules, roomID, categoryID, seasonID)
	if rule == nil {
		return nil, fmt.Errorf("%w: property=%s mode=%s season=%d", ErrNoPricingRuleFound, property, mode, seasonID)
	}
	return rule, nil
}

// ComputeStayPrice prices a validated stay.
//
//	per_person_per_night: amount x billed occupancy x nights, children billed
//	  at children_amount when the rule carries one
//	per_guest_per_day: amount x guests (day use, no nights factor)
//	buyout_fixed: amount x nights, guest count irrelevant
func ComputeStayPrice(rule *models.PricingRule, room *models.Room, guests uint, children uint, nights int) (money.Money, error) {
	switch rule.Unit {
	case types.UNIT_PER_PERSON_PER_NIGHT:
		billed := BilledOccupancy(guests, room)
		childRate := rule.ChildrenAmount()
		if childRate != nil && children > 0 {
			if children > billed {
				children = billed
			}
			adults := billed - children
			adultTotal := rule.Amount().MulInt(int64(adults)).MulInt(int64(nights))
			childTotal := childRate.MulInt(int64(children)).MulInt(int64(nights))
			return adultTotal.Add(childTotal)
		}
		return rule.Amount().MulInt(int64(billed)).MulInt(int64(nights)), nil
	case types.UNIT_PER_GUEST_PER_DAY:
		return rule.Amount().MulInt(int64(guests)), nil
	case types.UNIT_BUYOUT_FIXED:
		return rule.Amount().MulInt(int64(nights)), nil
	}
	return money.Money{}, fmt.Errorf("engine: unknown price unit %q", rule.Unit)
}
