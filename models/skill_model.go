package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Level runs from 1 (beginner) to 5 (expert).
type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Level     int       `gorm:"default:1" json:"level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
