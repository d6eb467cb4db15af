package services

import (
	"errors"

	"github.com/amelbk/stagelink/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownUser = errors.New("user not found")

const (
	IdentityKindStudent = "student"
	IdentityKindCompany = "company"
	IdentityKindPlain   = "plain"
)

// Identity is the resolved public face of a user account. DisplayName falls
// back in priority order: student full name, company name, username.
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	Kind        string    `json:"kind"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

// DirectoryService is the single place the display-name priority rule lives;
// every other component resolves identities through it.
type DirectoryService struct {
	db *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

func (s *DirectoryService) ResolveIdentity(userID uuid.UUID) (*Identity, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	var student models.Student
	if err := s.db.Where("user_id = ?", userID).First(&student).Error; err == nil {
		if student.FirstName != "" && student.LastName != "" {
			return &Identity{
				UserID:      userID,
				Kind:        IdentityKindStudent,
				DisplayName: student.FirstName + " " + student.LastName,
				AvatarURL:   student.ProfilePictureURL,
			}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var company models.Company
	if err := s.db.Where("user_id = ?", userID).First(&company).Error; err == nil {
		if company.Name != "" {
			return &Identity{
				UserID:      userID,
				Kind:        IdentityKindCompany,
				DisplayName: company.Name,
				AvatarURL:   company.LogoURL,
			}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &Identity{
		UserID:      userID,
		Kind:        IdentityKindPlain,
		DisplayName: user.Username,
	}, nil
}
