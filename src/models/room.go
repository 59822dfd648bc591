package models

import "crs/src/types"

type RoomCategory struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`

	types.Timestamps
}

// Room is admin configuration. Rooms referenced by bookings are soft-disabled
// via IsActive, never deleted.
type Room struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Property       types.Property `gorm:"index" json:"property,omitempty"`
	RoomCategoryID uint           `json:"room_category_id,omitempty"`
	Name           string         `json:"name,omitempty"`
	SingleBeds     uint8          `json:"single_beds,omitempty"`
	QueenBeds      uint8          `json:"queen_beds,omitempty"`
	KingBeds       uint8          `json:"king_beds,omitempty"`
	CapacityMax    uint           `json:"capacity_max,omitempty"`

	// MinBillableOccupancy raises the billed head count, it never rejects a
	// request with fewer guests.
	MinBillableOccupancy uint  `json:"min_billable_occupancy,omitempty"`
	IsActive             bool  `gorm:"default:true" json:"is_active,omitempty"`
	DefaultSeasonID      *uint `json:"default_season_id,omitempty"`

	RoomCategory  RoomCategory `json:"room_category,omitempty"`
	DefaultSeason *Season      `gorm:"foreignKey:default_season_id" json:"-"`

	types.Timestamps
}
