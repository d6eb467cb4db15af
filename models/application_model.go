package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAccepted  = "accepted"
)

// A student may apply to a given job post at most once.
type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_once" json:"student_id"`
	JobPostID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_once" json:"job_post_id"`
	CoverLetter    *string   `gorm:"type:text" json:"cover_letter"`
	Status         string    `gorm:"size:32;not null;default:'pending'" json:"status"`
	OfferLetterURL *string   `gorm:"size:256" json:"offer_letter_url"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	JobPost JobPost `gorm:"foreignkey:JobPostID" json:"job_post,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
