package engine

import (
	"fmt"

	"crs/src/models"
	"crs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfirmBookingPayment records a captured payment and moves the booking from
// pending to confirmed. Replaying a capture is safe: an already-confirmed
// booking is returned as-is, and the unique index on payments.booking_id
// blocks duplicate capture rows.
func ConfirmBookingPayment(gdb *gorm.DB, bookingID uint, amountCents int64, currency string, referenceID string) (*models.Booking, error) {
	var booking models.Booking
	transitioned := false
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			return err
		}
		switch booking.Status {
		case types.BOOKING_CONFIRMED:
			return nil
		case types.BOOKING_CANCELLED:
			return fmt.Errorf("booking %d is cancelled, payment capture rejected", bookingID)
		}
		payment := models.Payment{
			BookingID:   booking.ID,
			AmountCents: amountCents,
			Currency:    currency,
			ReferenceID: referenceID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", types.BOOKING_CONFIRMED).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CONFIRMED
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if transitioned {
		go ProduceBookingConfirmed(&booking)
	}
	return &booking, nil
}
