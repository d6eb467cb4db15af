package services_test

import (
	"errors"
	"testing"

	"github.com/amelbk/stagelink/services"
	"github.com/google/uuid"
)

func TestNotifyUnknownRecipient(t *testing.T) {
	db := newTestDB(t)
	notifier := services.NewNotificationService(db)

	if _, err := notifier.Notify(uuid.New(), "hello", nil); !errors.Is(err, services.ErrUnknownRecipient) {
		t.Fatalf("expected ErrUnknownRecipient, got %v", err)
	}
}

func TestNotifyDoesNotDeduplicate(t *testing.T) {
	db := newTestDB(t)
	notifier := services.NewNotificationService(db)

	user := createUser(t, db, "alice", "student")

	link := "/api/v1/students/me/applications"
	for i := 0; i < 2; i++ {
		if _, err := notifier.Notify(user.ID, "Your application was updated", &link); err != nil {
			t.Fatalf("Notify %d failed: %v", i, err)
		}
	}

	notifications, err := notifier.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notification rows (no dedup), got %d", len(notifications))
	}
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	notifier := services.NewNotificationService(db)

	user := createUser(t, db, "alice", "student")

	for i := 0; i < 3; i++ {
		if _, err := notifier.Notify(user.ID, "ping", nil); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
	}

	unread, err := notifier.UnreadCount(user.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if unread != 3 {
		t.Fatalf("expected 3 unread, got %d", unread)
	}

	updated, err := notifier.MarkAllRead(user.ID)
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if updated != 3 {
		t.Fatalf("expected 3 rows updated, got %d", updated)
	}

	unread, _ = notifier.UnreadCount(user.ID)
	if unread != 0 {
		t.Fatalf("expected 0 unread after MarkAllRead, got %d", unread)
	}

	updated, err = notifier.MarkAllRead(user.ID)
	if err != nil {
		t.Fatalf("second MarkAllRead failed: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected second MarkAllRead to be a no-op, got %d", updated)
	}
}
