package models

import "crs/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `gorm:"default:'member'" json:"role,omitempty"`

	types.Timestamps
}
