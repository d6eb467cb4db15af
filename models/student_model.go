package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName         string    `gorm:"size:64" json:"first_name"`
	LastName          string    `gorm:"size:64" json:"last_name"`
	ProfilePictureURL *string   `gorm:"size:256" json:"profile_picture_url"`
	CVFileURL         *string   `gorm:"size:256" json:"cv_file_url"`
	Bio               *string   `gorm:"type:text" json:"bio"`
	Education         *string   `gorm:"type:text" json:"education"`
	Phone             *string   `gorm:"size:20" json:"phone"`
	Website           *string   `gorm:"size:120" json:"website"`

	Skills []Skill `json:"skills,omitempty"`
	User   User    `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
