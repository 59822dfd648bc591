package engine

import (
	"errors"
	"fmt"

	"crs/src/types"
)

// Validation error codes returned to callers. These are user-facing and
// non-fatal; configuration gaps below are not.
const (
	CodeDateOrderInvalid             = "DateOrderInvalid"
	CodeCapacityExceeded             = "CapacityExceeded"
	CodeMinNightsViolated            = "MinNightsViolated"
	CodeMaxNightsExceeded            = "MaxNightsExceeded"
	CodeAdvanceBookingWindowExceeded = "AdvanceBookingWindowExceeded"
	CodeBookingConflict              = "BookingConflict"
	CodeGuestCountBelowMinimum       = "GuestCountBelowMinimum"
	CodeRoomUnavailable              = "RoomUnavailable"
)

// Configuration-gap errors. These indicate missing setup, not bad user
// input; they are escalated to operators rather than shown to members.
var (
	ErrNoSeasonConfigured = errors.New("engine: property has no default season configured")
	ErrNoPricingRuleFound = errors.New("engine: no pricing rule matches the requested stay")
	ErrNoPolicyConfigured = errors.New("engine: no active refund policy configured")
)

type ValidationError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Meta    types.JSONB `json:"meta,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code string, format string, args ...any) ValidationError {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
