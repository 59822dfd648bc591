package engine

import (
	"log"

	"crs/src/config"
	"crs/src/lib"
	"crs/src/models"
)

// Domain events for the notification collaborator. The engine only emits;
// message formatting and delivery happen downstream.

func ProduceBookingConfirmed(b *models.Booking) {
	payload := map[string]any{
		"id":                b.ID,
		"reference_id":      b.ReferenceID,
		"property":          string(b.Property),
		"mode":              string(b.Mode),
		"checkin_date":      b.CheckinDate.Format(config.DATE_PARSE_FORMAT),
		"checkout_date":     b.CheckoutDate.Format(config.DATE_PARSE_FORMAT),
		"guests_count":      b.GuestsCount,
		"total_price_cents": b.TotalPriceCents,
		"currency":          b.Currency,
		"user_id":           b.UserID,
	}
	if err := lib.KafkaProduceMessage("bookings_confirmed_producer", lib.TOPIC_BOOKINGS_CONFIRMED, payload); err != nil {
		log.Printf("[engine] Error producing booking-confirmed event: %s\n", err.Error())
	}
}

func ProduceBookingCancelled(r *models.RefundResult) {
	payload := map[string]any{
		"booking_id":          r.BookingID,
		"outcome":             string(r.Outcome),
		"refund_amount_cents": r.RefundAmountCents,
		"currency":            r.Currency,
		"reason":              r.Reason,
	}
	if err := lib.KafkaProduceMessage("bookings_cancelled_producer", lib.TOPIC_BOOKINGS_CANCELLED, payload); err != nil {
		log.Printf("[engine] Error producing booking-cancelled event: %s\n", err.Error())
	}
}

func ProduceRefundPending(p *models.PendingRefund) {
	payload := map[string]any{
		"id":                         p.ID,
		"booking_id":                 p.BookingID,
		"policy_refund_amount_cents": p.PolicyRefundAmountCents,
		"currency":                   p.Currency,
		"cancellation_reason":        p.CancellationReason,
	}
	if err := lib.KafkaProduceMessage("refunds_pending_producer", lib.TOPIC_REFUNDS_PENDING, payload); err != nil {
		log.Printf("[engine] Error producing refund-pending event: %s\n", err.Error())
	}
}
