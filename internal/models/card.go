package models

import (
	"gorm.io/datatypes"
)

type Card struct {
	BaseModel

	Title       string `gorm:"not null"`
	Description string
	Position    int   `gorm:"not null"`
	ListID      uint  `gorm:"not null;index"`
	AssigneeID  *uint `gorm:"index"`
	DueDate     *datatypes.Date

	// Relationships
	List     BoardList `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee *User     `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
