package models

// Role is the project-level role carried by a membership row.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

type ProjectMember struct {
	BaseModel

	UserID    uint `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_user_project"`
	Role      Role `gorm:"not null"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
