package models

// Global roles. Not consulted by project-level authorization, which only
// looks at ProjectMember rows.
const (
	GlobalRoleUser  = "USER"
	GlobalRoleAdmin = "ADMIN"
)

type User struct {
	BaseModel

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:USER"`

	// Relationships
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedCards      []Card          `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
