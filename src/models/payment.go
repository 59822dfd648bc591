package models

import (
	"crs/src/money"
	"crs/src/types"
)

// Payment is the captured charge for a booking as reported by the payment
// collaborator. The engine only reads it for refund math.
type Payment struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	BookingID   uint   `gorm:"uniqueIndex" json:"booking_id,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	Currency    string `gorm:"default:'USD'" json:"currency,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
	Status      string `gorm:"default:'captured'" json:"status,omitempty"`

	Booking Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}

func (p *Payment) Amount() money.Money {
	return money.New(p.AmountCents, p.Currency)
}
