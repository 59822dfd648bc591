package models

import (
	"time"

	"crs/src/types"
)

// Season is a recurring annual window for a property. StartsOn/EndsOn carry a
// base year that is ignored at resolution time; only month and day matter, so
// a window may wrap the year boundary (e.g. Nov 1 through Apr 30).
type Season struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	Property types.Property `gorm:"index" json:"property,omitempty"`
	Name     string         `json:"name,omitempty"`
	StartsOn time.Time      `gorm:"type:date" json:"starts_on,omitempty"`
	EndsOn   time.Time      `gorm:"type:date" json:"ends_on,omitempty"`

	// IsDefault marks the fallback season when no window matches a date
	// (leap-day gaps and misconfigured windows land here).
	IsDefault bool `json:"is_default,omitempty"`

	// Nil means unlimited.
	AdvanceBookingDays *uint `json:"advance_booking_days,omitempty"`
	MaxNights          *uint `json:"max_nights,omitempty"`

	types.Timestamps
}
