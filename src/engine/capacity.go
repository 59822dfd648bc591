package engine

import (
	"time"

	"crs/src/config"
	"crs/src/models"
	"crs/src/types"
)

// BilledOccupancy is the head count pricing charges for. A room's
// min_billable_occupancy raises it above the actual guest count; it never
// rejects a request.
func BilledOccupancy(guests uint, room *models.Room) uint {
	if room != nil && room.MinBillableOccupancy > guests {
		return room.MinBillableOccupancy
	}
	return guests
}

func ValidateDates(checkin time.Time, checkout time.Time) []ValidationError {
	if !checkin.Before(checkout) {
		return []ValidationError{
			newValidationError(CodeDateOrderInvalid, "checkout date %s must be after checkin date %s",
				checkout.Format(config.DATE_PARSE_FORMAT), checkin.Format(config.DATE_PARSE_FORMAT)),
		}
	}
	return nil
}

// ValidateCapacity enforces the room's hard guest cap for room mode, and the
// configured floors/ceilings for day and buyout mode.
func ValidateCapacity(mode types.BookingMode, guests uint, room *models.Room) []ValidationError {
	var errs []ValidationError
	switch mode {
	case types.MODE_ROOM:
		if room != nil && guests > room.CapacityMax {
			errs = append(errs, newValidationError(CodeCapacityExceeded,
				"room %d holds at most %d guests, got %d", room.ID, room.CapacityMax, guests))
		}
	case types.MODE_DAY, types.MODE_BUYOUT:
		min, max := config.ModeGuestBounds(mode)
		if guests < min {
			errs = append(errs, newValidationError(CodeGuestCountBelowMinimum,
				"%s bookings require at least %d guests, got %d", mode, min, guests))
		}
		if max > 0 && guests > max {
			errs = append(errs, newValidationError(CodeCapacityExceeded,
				"%s bookings allow at most %d guests, got %d", mode, max, guests))
		}
	}
	return errs
}

// ValidateStayWindow enforces the season's advance-booking limit and
// length-of-stay bounds. The season is the one in effect on the checkin
// date; today is the engine clock truncated to a calendar day.
func ValidateStayWindow(season *models.Season, checkin time.Time, checkout time.Time, today time.Time) []ValidationError {
	var errs []ValidationError

	nights := int(checkout.Sub(checkin).Hours() / 24)
	if nights < 1 {
		errs = append(errs, newValidationError(CodeMinNightsViolated, "stay must be at least 1 night"))
	}
	if season.MaxNights != nil && nights > int(*season.MaxNights) {
		errs = append(errs, newValidationError(CodeMaxNightsExceeded,
			"season %q allows stays of at most %d nights, got %d", season.Name, *season.MaxNights, nights))
	}
	if season.AdvanceBookingDays != nil {
		daysAhead := int(truncateToDay(checkin).Sub(truncateToDay(today)).Hours() / 24)
		if daysAhead > int(*season.AdvanceBookingDays) {
			errs = append(errs, newValidationError(CodeAdvanceBookingWindowExceeded,
				"season %q allows booking at most %d days ahead, requested %d", season.Name, *season.AdvanceBookingDays, daysAhead))
		}
	}
	return errs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
