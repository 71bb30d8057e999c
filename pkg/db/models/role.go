package models

import "github.com/google/uuid"

// Role mirrors the externally managed roles table (rhino-access owns the
// schema; this application only reads it).
type Role struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"column:name;not null;uniqueIndex"`
	HierarchyLevel int       `gorm:"column:hierarchy_level;not null;default:0"`
}

// UserRole joins an authenticated user to their role row.
type UserRole struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	RoleID uuid.UUID `gorm:"column:role_id;type:uuid;not null"`
	Role   Role      `gorm:"foreignKey:RoleID"`
}

// TableName matches the external access-control schema.
func (UserRole) TableName() string {
	return "user_roles"
}
