package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rhinostock/inventario-backend/pkg/db/models"
	"gorm.io/gorm"
)

const (
	// GuestEmail is the placeholder shown for requests with no session.
	GuestEmail = "Unknown"

	defaultRoleName = "viewer"

	adminHierarchyLevel = 80

	roleAdmin            = "admin"
	roleSuperAdmin       = "super_admin"
	roleQualityAssurance = "quality_assurance"
)

// Identity is the fixed-shape record every authorization decision consumes.
// It is resolved once per request and carried through the context.
type Identity struct {
	Email     string
	UserID    *uuid.UUID
	RoleName  string
	IsAdmin   bool
	CanVerify bool
}

// Guest is the identity used for unauthenticated requests. It is a valid
// identity, not an error: read-only pages still render for guests.
func Guest() Identity {
	return Identity{
		Email:    GuestEmail,
		RoleName: defaultRoleName,
	}
}

// Service resolves the role-derived identity for an authenticated user.
type Service interface {
	Resolve(ctx context.Context, userID uuid.UUID, email string) (Identity, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the resolver on top of the externally managed role tables.
func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

// Resolve looks up the user's role row and derives the authorization booleans.
// A user without a role row falls back to viewer defaults; only a store
// failure surfaces as an error.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID, email string) (Identity, error) {
	resolved := Identity{
		Email:    email,
		UserID:   &userID,
		RoleName: defaultRoleName,
	}

	if userID == uuid.Nil {
		return resolved, nil
	}

	var userRole models.UserRole
	err := s.db.WithContext(ctx).
		Preload("Role").
		Where("user_id = ?", userID).
		First(&userRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resolved, nil
		}
		return resolved, err
	}

	resolved.RoleName = userRole.Role.Name
	resolved.IsAdmin = userRole.Role.HierarchyLevel >= adminHierarchyLevel || userRole.Role.Name == roleQualityAssurance
	resolved.CanVerify = canVerify(userRole.Role.Name)
	return resolved, nil
}

func canVerify(roleName string) bool {
	switch roleName {
	case roleAdmin, roleSuperAdmin, roleQualityAssurance:
		return true
	}
	return false
}
