package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the unique thread between two users. The participant pair is
// stored normalized (UserAID sorts below UserBID byte-wise) so the composite
// unique index can enforce one row per unordered pair.
type Conversation struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserAID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_a_id"`
	UserBID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_b_id"`
	LastMessageAt time.Time `gorm:"index" json:"last_message_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Other returns the participant that is not the given user.
func (c *Conversation) Other(userID uuid.UUID) uuid.UUID {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}
