package models

import "time"

// BaseModel is gorm.Model without the soft-delete column. Deletes in this
// domain are hard deletes; a unique index over soft-deleted membership rows
// would block re-adding a removed member.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
