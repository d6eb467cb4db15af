package services

import (
	"errors"

	"github.com/amelbk/stagelink/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownRecipient = errors.New("notification recipient does not exist")

// NotificationService is the write seam every subsystem uses to surface a
// state change into a user's alert feed. Notify is fire-and-forget: no retry,
// no deduplication, each call appends a new row.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(userID uuid.UUID, message string, link *string) (*models.Notification, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUnknownRecipient
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
