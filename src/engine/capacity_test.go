package engine

import (
	"testing"
	"time"

	"crs/src/models"
	"crs/src/types"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestValidateDates(t *testing.T) {
	errs := ValidateDates(date(2026, time.September, 13), date(2026, time.September, 10))
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeDateOrderInvalid, errs[0].Code)

	errs = ValidateDates(date(2026, time.September, 10), date(2026, time.September, 10))
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeDateOrderInvalid, errs[0].Code)

	assert.Empty(t, ValidateDates(date(2026, time.September, 10), date(2026, time.September, 13)))
}

func TestValidateCapacityRoomMode(t *testing.T) {
	room := &models.Room{ID: 7, CapacityMax: 2}

	assert.Empty(t, ValidateCapacity(types.MODE_ROOM, 2, room))

	errs := ValidateCapacity(types.MODE_ROOM, 3, room)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeCapacityExceeded, errs[0].Code)
}

func TestValidateCapacityModeBounds(t *testing.T) {
	t.Setenv("BUYOUT_MIN_GUESTS", "8")
	t.Setenv("BUYOUT_MAX_GUESTS", "30")

	errs := ValidateCapacity(types.MODE_BUYOUT, 4, nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeGuestCountBelowMinimum, errs[0].Code)

	errs = ValidateCapacity(types.MODE_BUYOUT, 31, nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeCapacityExceeded, errs[0].Code)

	assert.Empty(t, ValidateCapacity(types.MODE_BUYOUT, 12, nil))
}

func TestBilledOccupancy(t *testing.T) {
	room := &models.Room{MinBillableOccupancy: 2}
	assert.Equal(t, uint(2), BilledOccupancy(1, room))
	assert.Equal(t, uint(3), BilledOccupancy(3, room))
	assert.Equal(t, uint(1), BilledOccupancy(1, nil))
}

func TestValidateStayWindowMaxNights(t *testing.T) {
	season := &models.Season{Name: "summer", MaxNights: uintPtr(4)}
	today := date(2026, time.August, 1)

	assert.Empty(t, ValidateStayWindow(season, date(2026, time.August, 10), date(2026, time.August, 14), today))

	errs := ValidateStayWindow(season, date(2026, time.August, 10), date(2026, time.August, 15), today)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeMaxNightsExceeded, errs[0].Code)
}

func TestValidateStayWindowMinNights(t *testing.T) {
	season := &models.Season{Name: "summer"}
	today := date(2026, time.August, 1)
	// dates already ordered, but zero nights can still arrive via skip paths
	errs := ValidateStayWindow(season, date(2026, time.August, 10), date(2026, time.August, 10), today)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeMinNightsViolated, errs[0].Code)
}

func TestValidateStayWindowAdvanceBooking(t *testing.T) {
	season := &models.Season{Name: "winter", AdvanceBookingDays: uintPtr(45)}
	today := date(2026, time.November, 1)

	// 50 days out: too far ahead
	errs := ValidateStayWindow(season, date(2026, time.December, 21), date(2026, time.December, 23), today)
	assert.Len(t, errs, 1)
	assert.Equal(t, CodeAdvanceBookingWindowExceeded, errs[0].Code)

	// 45 days out exactly: allowed
	assert.Empty(t, ValidateStayWindow(season, date(2026, time.December, 16), date(2026, time.December, 18), today))
}

func TestValidateStayWindowUnlimitedSeason(t *testing.T) {
	season := &models.Season{Name: "off-season"}
	today := date(2026, time.August, 1)
	assert.Empty(t, ValidateStayWindow(season, date(2027, time.August, 10), date(2027, time.September, 10), today))
}
