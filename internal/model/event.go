package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null"`

	Creator User `gorm:"foreignKey:CreatedByID"`
}
