package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is only ever created as a side effect of another state change
// (new message, new application, status update), never directly by the owner.
type Notification struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Link    *string   `gorm:"size:256" json:"link"`
	IsRead  bool      `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
