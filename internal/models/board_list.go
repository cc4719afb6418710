package models

type BoardList struct {
	BaseModel

	Title     string `gorm:"not null"`
	Position  int    `gorm:"not null"`
	ProjectID uint   `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Cards   []Card  `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
