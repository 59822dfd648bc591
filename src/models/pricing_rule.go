package models

import (
	"crs/src/money"
	"crs/src/types"
)

// PricingRule scopes a rate by (mode, unit, property) plus three optional
// dimensions. A nil RoomID/RoomCategoryID/SeasonID acts as a wildcard;
// resolution picks the most specific non-nil match (room > category >
// property) and prefers a season-scoped rule over a season-agnostic one.
type PricingRule struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	Property       types.Property    `gorm:"index" json:"property,omitempty"`
	Mode           types.BookingMode `gorm:"index" json:"mode,omitempty"`
	Unit           types.PriceUnit   `json:"unit,omitempty"`
	RoomID         *uint             `json:"room_id,omitempty"`
	RoomCategoryID *uint             `json:"room_category_id,omitempty"`
	SeasonID       *uint             `json:"season_id,omitempty"`

	AmountCents         int64  `json:"amount_cents,omitempty"`
	ChildrenAmountCents *int64 `json:"children_amount_cents,omitempty"`
	Currency            string `gorm:"default:'USD'" json:"currency,omitempty"`

	types.Timestamps
}

func (r *PricingRule) Amount() money.Money {
	return money.New(r.AmountCents, r.Currency)
}

func (r *PricingRule) ChildrenAmount() *money.Money {
	if r.ChildrenAmountCents == nil {
		return nil
	}
	m := money.New(*r.ChildrenAmountCents, r.Currency)
	return &m
}
