package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Staff and superuser flags are checked independently of the role
// field for admin access.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'member';check:role IN ('admin', 'member')"`
	IsStaff        bool      `gorm:"not null;default:false"`
	IsSuperuser    bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
