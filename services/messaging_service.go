package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amelbk/stagelink/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxMessageBodyLength = 2000

var (
	ErrInvalidParticipants = errors.New("sender and recipient must be two distinct existing users")
	ErrEmptyBody           = errors.New("message body must not be empty")
	ErrBodyTooLong         = fmt.Errorf("message body must not exceed %d characters", MaxMessageBodyLength)
)

// ConversationSummary is one inbox entry: the counterpart's resolved identity,
// the most recent message in either direction and how many inbound messages
// are still unread.
type ConversationSummary struct {
	ConversationID uint            `json:"conversation_id"`
	OtherUser      *Identity       `json:"other_user"`
	LatestMessage  *models.Message `json:"latest_message"`
	UnreadCount    int64           `json:"unread_count"`
	LastMessageAt  time.Time       `json:"last_message_at"`
}

type MessagingService struct {
	db        *gorm.DB
	directory *DirectoryService
	notifier  *NotificationService
}

func NewMessagingService(db *gorm.DB, directory *DirectoryService, notifier *NotificationService) *MessagingService {
	return &MessagingService{db: db, directory: directory, notifier: notifier}
}

// normalizePair orders two user ids so the smaller one is stored first. The
// unique index on (user_a_id, user_b_id) then enforces one conversation per
// unordered pair at the storage layer.
func normalizePair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(x[:], y[:]) > 0 {
		return y, x
	}
	return x, y
}

// EnsureConversation returns the conversation for the unordered pair {x, y},
// creating it on first contact. Idempotent in either argument order.
func (s *MessagingService) EnsureConversation(x, y uuid.UUID) (*models.Conversation, error) {
	if x == y || x == uuid.Nil || y == uuid.Nil {
		return nil, ErrInvalidParticipants
	}
	return s.ensureConversation(s.db, x, y)
}

func (s *MessagingService) ensureConversation(tx *gorm.DB, x, y uuid.UUID) (*models.Conversation, error) {
	a, b := normalizePair(x, y)

	var conversation models.Conversation
	err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{UserAID: a, UserBID: b, LastMessageAt: time.Now()}
	if createErr := tx.Create(&conversation).Error; createErr != nil {
		// Lost the race on the pair index; the winner's row is ours too.
		if err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conversation).Error; err != nil {
			return nil, createErr
		}
	}
	return &conversation, nil
}

// SendMessage appends a message to the pair's thread and bumps the
// conversation's last activity, all in one transaction. The recipient
// notification is created after commit and is best effort: its failure is
// logged, never propagated.
func (s *MessagingService) SendMessage(senderID, recipientID uuid.UUID, body string) (*models.Message, error) {
	if senderID == recipientID || senderID == uuid.Nil || recipientID == uuid.Nil {
		return nil, ErrInvalidParticipants
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > MaxMessageBodyLength {
		return nil, ErrBodyTooLong
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id IN ?", []uuid.UUID{senderID, recipientID}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != 2 {
		return nil, ErrInvalidParticipants
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		conversation, err := s.ensureConversation(tx, senderID, recipientID)
		if err != nil {
			return err
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversation.ID).
			Update("last_message_at", message.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyRecipient(message)

	return message, nil
}

func (s *MessagingService) notifyRecipient(message *models.Message) {
	sender, err := s.directory.ResolveIdentity(message.SenderID)
	if err != nil {
		log.Printf("Failed to resolve sender %s for message notification: %v", message.SenderID, err)
		return
	}

	link := "/api/v1/messages/conversations/" + message.SenderID.String()
	if _, err := s.notifier.Notify(message.RecipientID, "New message from "+sender.DisplayName, &link); err != nil {
		log.Printf("Failed to create message notification for %s: %v", message.RecipientID, err)
	}
}

// MarkThreadRead flips every unread message sent by otherID to readerID in a
// single bulk update and reports how many rows changed. Calling it with
// nothing unread is a no-op.
func (s *MessagingService) MarkThreadRead(readerID, otherID uuid.UUID) (int64, error) {
	return markThreadRead(s.db, readerID, otherID)
}

func markThreadRead(tx *gorm.DB, readerID, otherID uuid.UUID) (int64, error) {
	result := tx.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// ListInbox assembles one summary per conversation involving the user,
// ordered by most recent activity first.
func (s *MessagingService) ListInbox(userID uuid.UUID) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	err := s.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at desc").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		otherID := conversation.Other(userID)

		identity, err := s.directory.ResolveIdentity(otherID)
		if err != nil {
			return nil, err
		}

		var latest models.Message
		var latestMessage *models.Message
		err = s.db.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				userID, otherID, otherID, userID).
			Order("created_at desc, id desc").
			First(&latest).Error
		if err == nil {
			latestMessage = &latest
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var unread int64
		err = s.db.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, userID, false).
			Count(&unread).Error
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, ConversationSummary{
			ConversationID: conversation.ID,
			OtherUser:      identity,
			LatestMessage:  latestMessage,
			UnreadCount:    unread,
			LastMessageAt:  conversation.LastMessageAt,
		})
	}

	return summaries, nil
}

// GetThread returns the counterpart's identity and the full transcript in
// send order. Viewing the thread marks the inbound unread messages as read;
// the flag flip and the fetch share one transaction so unread counts never
// observe a half-applied state.
func (s *MessagingService) GetThread(userID, otherID uuid.UUID) (*Identity, []models.Message, error) {
	if userID == otherID || userID == uuid.Nil || otherID == uuid.Nil {
		return nil, nil, ErrInvalidParticipants
	}

	identity, err := s.directory.ResolveIdentity(otherID)
	if err != nil {
		return nil, nil, err
	}

	var messages []models.Message
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ensureConversation(tx, userID, otherID); err != nil {
			return err
		}
		if _, err := markThreadRead(tx, userID, otherID); err != nil {
			return err
		}
		return tx.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				userID, otherID, otherID, userID).
			Order("created_at asc, id asc").
			Find(&messages).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return identity, messages, nil
}
