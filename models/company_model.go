package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	LogoURL     *string   `gorm:"size:256" json:"logo_url"`
	Description *string   `gorm:"type:text" json:"description"`
	Industry    *string   `gorm:"size:64" json:"industry"`
	Website     *string   `gorm:"size:120" json:"website"`
	Location    *string   `gorm:"size:128" json:"location"`
	Size        *string   `gorm:"size:32" json:"size"`
	FoundedYear *int      `json:"founded_year"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
