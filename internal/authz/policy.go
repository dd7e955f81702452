// Package authz holds the pure authorization predicates. They never touch the
// database and never fail; callers treat false as deny.
package authz

import (
	"github.com/google/uuid"

	"taskapp/internal/model"
)

// IsAdmin reports whether the user has staff or superuser privileges. The role
// field is deliberately not consulted; both signals exist and admin access
// follows the flags.
func IsAdmin(user *model.User) bool {
	return user.IsStaff || user.IsSuperuser
}

// CanModify reports whether the user may update or delete an object created by
// creatorID.
func CanModify(user *model.User, creatorID uuid.UUID) bool {
	return user.ID == creatorID || IsAdmin(user)
}
