package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// Property identifies a physical cabin. The set is closed; adding a property
// is a code change, not configuration.
type Property string

const (
	PROPERTY_TAHOE     Property = "tahoe"
	PROPERTY_CLEARLAKE Property = "clearlake"
)

func (p Property) Valid() bool {
	switch p {
	case PROPERTY_TAHOE, PROPERTY_CLEARLAKE:
		return true
	}
	return false
}

func AllProperties() []Property {
	return []Property{PROPERTY_TAHOE, PROPERTY_CLEARLAKE}
}

type BookingMode string

const (
	MODE_ROOM   BookingMode = "room"
	MODE_DAY    BookingMode = "day"
	MODE_BUYOUT BookingMode = "buyout"
)

func (m BookingMode) Valid() bool {
	switch m {
	case MODE_ROOM, MODE_DAY, MODE_BUYOUT:
		return true
	}
	return false
}

func AllBookingModes() []BookingMode {
	return []BookingMode{MODE_ROOM, MODE_DAY, MODE_BUYOUT}
}

type PriceUnit string

const (
	UNIT_PER_PERSON_PER_NIGHT PriceUnit = "per_person_per_night"
	UNIT_PER_GUEST_PER_DAY    PriceUnit = "per_guest_per_day"
	UNIT_BUYOUT_FIXED         PriceUnit = "buyout_fixed"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

type RefundOutcome string

const (
	REFUND_AUTO_PROCESSED RefundOutcome = "auto_processed"
	REFUND_NONE           RefundOutcome = "no_refund"
	REFUND_PENDING_REVIEW RefundOutcome = "pending_review"
)

type PendingRefundStatus string

const (
	PENDING_REFUND_OPEN     PendingRefundStatus = "open"
	PENDING_REFUND_APPROVED PendingRefundStatus = "approved"
	PENDING_REFUND_DENIED   PendingRefundStatus = "denied"
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	UID   string `json:"uid"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	Property       string `json:"property" binding:"required"`
	Mode           string `json:"mode" binding:"required"`
	RoomID         *uint  `json:"room_id,omitempty"`
	CheckinDate    string `json:"checkin_date" binding:"required,staydate"`
	CheckoutDate   string `json:"checkout_date" binding:"required,staydate"`
	GuestsCount    uint   `json:"guests_count" binding:"required,min=1"`
	ChildrenCount  uint   `json:"children_count,omitempty"`
	SkipValidation bool   `json:"skip_validation,omitempty"`
}

type CancelBookingRequestBody struct {
	Reason         string `json:"reason" binding:"required"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type AvailabilityRequestQuery struct {
	Property string `form:"property" binding:"required"`
	RoomID   *uint  `form:"room_id"`
	From     string `form:"from" binding:"required,staydate"`
	To       string `form:"to" binding:"required,staydate"`
}

type InvalidateCacheRequestBody struct {
	Key string `json:"key,omitempty"`
	All bool   `json:"all,omitempty"`
}

type ResolvePendingRefundRequestBody struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}
