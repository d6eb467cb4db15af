package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobPost struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	Title        string     `gorm:"size:128;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Requirements *string    `gorm:"type:text" json:"requirements"`
	Location     *string    `gorm:"size:128" json:"location"`
	JobType      *string    `gorm:"size:32" json:"job_type"`
	SalaryMin    *float64   `json:"salary_min"`
	SalaryMax    *float64   `json:"salary_max"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	Deadline     *time.Time `json:"deadline"`

	Company Company `gorm:"foreignkey:CompanyID" json:"company,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *JobPost) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
