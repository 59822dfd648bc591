package models

import (
	"time"

	"crs/src/money"
	"crs/src/types"
)

// Booking intervals are half-open [checkin, checkout): a stay checking out on
// the day another checks in is legal (same-day turnover). Bookings are never
// deleted; cancellation is a state transition so financial history survives.
type Booking struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	ReferenceID string            `gorm:"uniqueIndex" json:"reference_id,omitempty"`
	Property    types.Property    `gorm:"index" json:"property,omitempty"`
	Mode        types.BookingMode `gorm:"index" json:"mode,omitempty"`

	// RoomID is required for room mode, nil for day and buyout.
	RoomID        *uint               `gorm:"index" json:"room_id,omitempty"`
	CheckinDate   time.Time           `gorm:"type:date;index" json:"checkin_date,omitempty"`
	CheckoutDate  time.Time           `gorm:"type:date" json:"checkout_date,omitempty"`
	GuestsCount   uint                `json:"guests_count,omitempty"`
	ChildrenCount uint                `json:"children_count,omitempty"`
	UserID        uint                `json:"user_id,omitempty"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`

	// Total price is computed once at creation and frozen.
	TotalPriceCents int64  `json:"total_price_cents,omitempty"`
	Currency        string `gorm:"default:'USD'" json:"currency,omitempty"`

	Room    *Room    `gorm:"foreignKey:room_id" json:"room,omitempty"`
	User    *User    `gorm:"foreignKey:user_id" json:"-"`
	Payment *Payment `json:"payment,omitempty"`

	types.Timestamps
}

func (b *Booking) TotalPrice() money.Money {
	return money.New(b.TotalPriceCents, b.Currency)
}

func (b *Booking) Nights() int {
	return int(b.CheckoutDate.Sub(b.CheckinDate).Hours() / 24)
}
