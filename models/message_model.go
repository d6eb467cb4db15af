package models

import (
	"time"

	"github.com/google/uuid"
)

// Message rows only carry the directed sender/recipient pair; a thread is the
// union of both directions between two users. Everything except IsRead is
// immutable once written.
type Message struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"sent_at"`
}
