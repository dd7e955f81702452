package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title        string    `gorm:"not null"`
	Description  string
	Document     string     // stored path of the attached file, empty when none
	DueDate      *time.Time `gorm:"type:date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	CreatedByID  uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedToID uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsCompleted  bool       `gorm:"not null;default:false"`

	Creator  User `gorm:"foreignKey:CreatedByID"`
	Assignee User `gorm:"foreignKey:AssignedToID"`
}
