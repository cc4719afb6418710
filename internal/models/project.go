package models

type Project struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	CreatedByID uint `gorm:"not null;index"`

	// Relationships
	CreatedBy User            `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members   []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Lists     []BoardList     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
