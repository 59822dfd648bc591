package engine

import (
	"errors"
	"log"
	"strings"
	"time"

	"crs/src/config"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"

	"gorm.io/gorm"
)

// BookingRequest is a candidate stay entering the validation pipeline.
type BookingRequest struct {
	Property      types.Property
	Mode          types.BookingMode
	RoomID        *uint
	CheckinDate   time.Time
	CheckoutDate  time.Time
	GuestsCount   uint
	ChildrenCount uint
	UserID        uint

	// SkipValidation bypasses every check. It is an explicit admin-tooling
	// opt-in; each use is recorded in the audit trail.
	SkipValidation bool
}

var errBookingConflict = errors.New("engine: booking window conflict")

// ValidateAndPrice runs the pipeline: dates, room, season, capacity, stay
// window, then conflict check + pricing + insert inside a single locked
// transaction. Checks short-circuit on the first failure. The returned
// ValidationError slice is user-facing; a non-nil error is a configuration
// or infrastructure fault.
func ValidateAndPrice(gdb *gorm.DB, req *BookingRequest) (*models.Booking, []ValidationError, error) {
	if !req.SkipValidation {
		if verrs := ValidateDates(req.CheckinDate, req.CheckoutDate); len(verrs) > 0 {
			return nil, verrs, nil
		}
	}

	var room *models.Room
	if req.Mode == types.MODE_ROOM {
		if req.RoomID == nil {
			return nil, []ValidationError{newValidationError(CodeRoomUnavailable, "room bookings require a room_id")}, nil
		}
		var r models.Room
		err := gdb.
			Where(&models.Room{ID: *req.RoomID, Property: req.Property}).
			First(&r).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !r.IsActive) {
			return nil, []ValidationError{newValidationError(CodeRoomUnavailable,
				"room %d is not available at %s", *req.RoomID, req.Property)}, nil
		}
		if err != nil {
			return nil, nil, err
		}
		room = &r
	}

	season, err := ResolveSeason(gdb, req.Property, req.CheckinDate)
	if err != nil {
		return nil, nil, err
	}

	if !req.SkipValidation {
		if verrs := ValidateCapacity(req.Mode, req.GuestsCount, room); len(verrs) > 0 {
			return nil, verrs, nil
		}
		if verrs := ValidateStayWindow(season, req.CheckinDate, req.CheckoutDate, Now()); len(verrs) > 0 {
			return nil, verrs, nil
		}
	}

	// Conflict check and insert are one atomic unit under the property
	// advisory lock; serialization failures are retried before giving up
	// and reporting a conflict.
	var booking *models.Booking
	var conflictIDs []uint
	retries := config.BookingTxRetries()
	for attempt := 0; ; attempt++ {
		booking = nil
		conflictIDs = nil
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := AcquirePropertyLock(tx, req.Property); err != nil {
				return err
			}
			if !req.SkipValidation {
				ids, err := FindConflicts(tx, req.Property, req.Mode, req.RoomID, req.CheckinDate, req.CheckoutDate, 0)
				if err != nil {
					return err
				}
				if len(ids) > 0 {
					conflictIDs = ids
					return errBookingConflict
				}
			}
			rule, err := ResolvePricingRule(tx, req.Property, req.Mode, room, season.ID)
			if err != nil {
				return err
			}
			nights := int(req.CheckoutDate.Sub(req.CheckinDate).Hours() / 24)
			total, err := ComputeStayPrice(rule, room, req.GuestsCount, req.ChildrenCount, nights)
			if err != nil {
				return err
			}
			// The booking holds its window from creation; the payment
			// collaborator confirms it once the charge is captured.
			b := models.Booking{
				ReferenceID:     utils.NewBookingReference(req.Property),
				Property:        req.Property,
				Mode:            req.Mode,
				RoomID:          req.RoomID,
				CheckinDate:     req.CheckinDate,
				CheckoutDate:    req.CheckoutDate,
				GuestsCount:     req.GuestsCount,
				ChildrenCount:   req.ChildrenCount,
				UserID:          req.UserID,
				Status:          types.BOOKING_PENDING,
				TotalPriceCents: total.Amount,
				Currency:        total.Currency,
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
			booking = &b
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, errBookingConflict) {
			verr := newValidationError(CodeBookingConflict, "requested window overlaps existing bookings")
			verr.Meta = types.JSONB{"existing_booking_ids": conflictIDs}
			return nil, []ValidationError{verr}, nil
		}
		if isSerializationFailure(err) {
			if attempt < retries {
				continue
			}
			log.Printf("[engine] booking tx for %s gave up after %d serialization retries\n", req.Property, retries)
			return nil, []ValidationError{newValidationError(CodeBookingConflict,
				"requested window could not be reserved, try again")}, nil
		}
		return nil, nil, err
	}

	if req.SkipValidation {
		utils.RecordTrail(gdb, req.UserID, "booking.create.skip_validation", "booking", booking.ID, types.JSONB{
			"property": string(req.Property),
			"mode":     string(req.Mode),
		})
	}
	return booking, nil, nil
}

func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
