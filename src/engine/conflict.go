package engine

import (
	"hash/fnv"
	"time"

	"crs/src/models"
	"crs/src/types"

	"gorm.io/gorm"
)

// Overlaps reports whether the half-open intervals [aIn, aOut) and
// [bIn, bOut) intersect. Equal checkout/checkin endpoints do not overlap,
// which is what makes same-day turnover legal.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// AcquirePropertyLock takes an advisory transaction lock for the property.
// The lock is property-wide for every mode: a room-level lock would let a
// room insert race a buyout insert on the same window.
func AcquirePropertyLock(tx *gorm.DB, property types.Property) error {
	h := fnv.New64a()
	h.Write([]byte("booking-lock:" + string(property)))
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(h.Sum64())).Error
}

// FindConflicts returns the ids of non-cancelled bookings that overlap the
// requested window under the mode's scoping rules:
//   - room: other bookings on the same room, plus any buyout
//   - day: other day-use bookings and buyouts (room stays and day-use
//     coexist)
//   - buyout: every booking at the property
//
// excludeID skips a booking when re-validating an update.
func FindConflicts(tx *gorm.DB, property types.Property, mode types.BookingMode, roomID *uint, checkin time.Time, checkout time.Time, excludeID uint) ([]uint, error) {
	q := tx.
		Model(&models.Booking{}).
		Where("property = ?", property).
		Where("status <> ?", types.BOOKING_CANCELLED).
		Where("checkin_date < ? AND checkout_date > ?", checkout, checkin)
	switch mode {
	case types.MODE_ROOM:
		q = q.Where("mode = ? OR (mode = ? AND room_id = ?)", types.MODE_BUYOUT, types.MODE_ROOM, roomID)
	case types.MODE_DAY:
		q = q.Where("mode IN ?", []types.BookingMode{types.MODE_DAY, types.MODE_BUYOUT})
	case types.MODE_BUYOUT:
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var ids []uint
	if err := q.Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Conflict is one existing booking blocking (part of) a requested window.
type Conflict struct {
	BookingID    uint              `json:"booking_id"`
	RoomID       *uint             `json:"room_id,omitempty"`
	Mode         types.BookingMode `json:"mode"`
	CheckinDate  time.Time         `json:"checkin_date"`
	CheckoutDate time.Time         `json:"checkout_date"`
}

// Availability lists bookings overlapping a date range, optionally narrowed
// to one room (buyouts always count against a room).
func Availability(gdb *gorm.DB, property types.Property, roomID *uint, from time.Time, to time.Time) ([]Conflict, error) {
	q := gdb.
		Model(&models.Booking{}).
		Where("property = ?", property).
		Where("status <> ?", types.BOOKING_CANCELLED).
		Where("checkin_date < ? AND checkout_date > ?", to, from)
	if roomID != nil {
		q = q.Where("mode = ? OR room_id = ?", types.MODE_BUYOUT, *roomID)
	}
	var bookings []models.Booking
	if err := q.Order("checkin_date asc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	conflicts := make([]Conflict, 0, len(bookings))
	for _, b := range bookings {
		conflicts = append(conflicts, Conflict{
			BookingID:    b.ID,
			RoomID:       b.RoomID,
			Mode:         b.Mode,
			CheckinDate:  b.CheckinDate,
			CheckoutDate: b.CheckoutDate,
		})
	}
	return conflicts, nil
}
