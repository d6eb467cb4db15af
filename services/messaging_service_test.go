package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
)

func TestEnsureConversationIdempotent(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	first, err := svc.EnsureConversation(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("EnsureConversation failed: %v", err)
	}

	second, err := svc.EnsureConversation(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("EnsureConversation with swapped arguments failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same conversation in either argument order, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 conversation row, got %d", count)
	}
}

func TestEnsureConversationRejectsSelf(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")

	if _, err := svc.EnsureConversation(alice.ID, alice.ID); !errors.Is(err, services.ErrInvalidParticipants) {
		t.Fatalf("expected ErrInvalidParticipants, got %v", err)
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	if _, err := svc.SendMessage(alice.ID, alice.ID, "hi"); !errors.Is(err, services.ErrInvalidParticipants) {
		t.Fatalf("expected ErrInvalidParticipants for self-send, got %v", err)
	}
	if _, err := svc.SendMessage(alice.ID, bob.ID, "   "); !errors.Is(err, services.ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
	tooLong := strings.Repeat("a", services.MaxMessageBodyLength+1)
	if _, err := svc.SendMessage(alice.ID, bob.ID, tooLong); !errors.Is(err, services.ErrBodyTooLong) {
		t.Fatalf("expected ErrBodyTooLong, got %v", err)
	}

	var count int64
	db.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no message rows after failed validation, got %d", count)
	}
	db.Model(&models.Conversation{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no conversation rows after failed validation, got %d", count)
	}
}

func TestSendMessageRejectsUnknownRecipient(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	ghost := createStudent(t, db, "ghost", "Gone", "User")
	if err := db.Delete(&models.User{}, "id = ?", ghost.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := svc.SendMessage(alice.ID, ghost.ID, "anyone there?"); !errors.Is(err, services.ErrInvalidParticipants) {
		t.Fatalf("expected ErrInvalidParticipants for missing recipient, got %v", err)
	}
}

func TestTranscriptOrdering(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	bodies := []string{"first", "second", "third", "fourth"}
	for i, body := range bodies {
		var err error
		if i%2 == 0 {
			_, err = svc.SendMessage(alice.ID, bob.ID, body)
		} else {
			_, err = svc.SendMessage(bob.ID, alice.ID, body)
		}
		if err != nil {
			t.Fatalf("SendMessage %q failed: %v", body, err)
		}
	}

	_, messages, err := svc.GetThread(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if len(messages) != len(bodies) {
		t.Fatalf("expected %d messages, got %d", len(bodies), len(messages))
	}
	for i, body := range bodies {
		if messages[i].Body != body {
			t.Fatalf("message %d: expected body %q, got %q", i, body, messages[i].Body)
		}
	}
}

func TestThreadSymmetry(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	if _, err := svc.SendMessage(alice.ID, bob.ID, "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := svc.SendMessage(bob.ID, alice.ID, "hi back"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	_, fromAlice, err := svc.GetThread(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetThread(alice, bob) failed: %v", err)
	}
	_, fromBob, err := svc.GetThread(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetThread(bob, alice) failed: %v", err)
	}

	if len(fromAlice) != len(fromBob) {
		t.Fatalf("expected identical transcripts, got %d and %d messages", len(fromAlice), len(fromBob))
	}
	for i := range fromAlice {
		if fromAlice[i].ID != fromBob[i].ID {
			t.Fatalf("transcripts diverge at index %d: %d vs %d", i, fromAlice[i].ID, fromBob[i].ID)
		}
	}
}

func TestUnreadAccounting(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	const sent = 3
	for i := 0; i < sent; i++ {
		if _, err := svc.SendMessage(bob.ID, alice.ID, "ping"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	inbox, err := svc.ListInbox(alice.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("expected 1 conversation in inbox, got %d", len(inbox))
	}
	if inbox[0].UnreadCount != sent {
		t.Fatalf("expected unread_count=%d, got %d", sent, inbox[0].UnreadCount)
	}

	if _, _, err := svc.GetThread(alice.ID, bob.ID); err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}

	inbox, err = svc.ListInbox(alice.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if inbox[0].UnreadCount != 0 {
		t.Fatalf("expected unread_count=0 after viewing the thread, got %d", inbox[0].UnreadCount)
	}

	var unreadRows int64
	db.Model(&models.Message{}).Where("is_read = ?", false).Count(&unreadRows)
	if unreadRows != 0 {
		t.Fatalf("expected every message flagged read, %d still unread", unreadRows)
	}
}

func TestMarkThreadReadIdempotent(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	if _, err := svc.SendMessage(bob.ID, alice.ID, "ping"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	affected, err := svc.MarkThreadRead(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("MarkThreadRead failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	affected, err = svc.MarkThreadRead(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second MarkThreadRead failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected second call to be a no-op, %d rows affected", affected)
	}
}

func TestMessagingScenario(t *testing.T) {
	svc, notifier, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createCompany(t, db, "nordlys", "Nordlys Labs")

	if _, err := svc.SendMessage(alice.ID, bob.ID, "Hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	inbox, err := svc.ListInbox(bob.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("expected 1 conversation in Bob's inbox, got %d", len(inbox))
	}
	if inbox[0].UnreadCount != 1 {
		t.Fatalf("expected unread_count=1, got %d", inbox[0].UnreadCount)
	}
	if inbox[0].LatestMessage == nil || inbox[0].LatestMessage.Body != "Hello" {
		t.Fatalf("expected latest_message=Hello, got %+v", inbox[0].LatestMessage)
	}
	if inbox[0].OtherUser.DisplayName != "Alice Martin" {
		t.Fatalf("expected counterpart display name from the student profile, got %q", inbox[0].OtherUser.DisplayName)
	}

	bobAlerts, err := notifier.ListForUser(bob.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(bobAlerts) != 1 {
		t.Fatalf("expected 1 notification for Bob, got %d", len(bobAlerts))
	}
	if bobAlerts[0].Message != "New message from Alice Martin" {
		t.Fatalf("unexpected notification text: %q", bobAlerts[0].Message)
	}
	if bobAlerts[0].Link == nil || !strings.Contains(*bobAlerts[0].Link, alice.ID.String()) {
		t.Fatalf("expected notification link back to Alice's thread, got %v", bobAlerts[0].Link)
	}

	identity, _, err := svc.GetThread(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if identity.Kind != services.IdentityKindStudent {
		t.Fatalf("expected student identity, got %q", identity.Kind)
	}

	inbox, _ = svc.ListInbox(bob.ID)
	if inbox[0].UnreadCount != 0 {
		t.Fatalf("expected unread_count=0 after Bob opened the thread, got %d", inbox[0].UnreadCount)
	}

	if _, err := svc.SendMessage(bob.ID, alice.ID, "Hi there"); err != nil {
		t.Fatalf("reply failed: %v", err)
	}

	aliceInbox, err := svc.ListInbox(alice.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if aliceInbox[0].LatestMessage.Body != "Hi there" {
		t.Fatalf("expected latest_message to be the reply, got %q", aliceInbox[0].LatestMessage.Body)
	}
	if !aliceInbox[0].LastMessageAt.Equal(aliceInbox[0].LatestMessage.CreatedAt) {
		t.Fatalf("expected conversation last activity to match the reply timestamp")
	}

	aliceAlerts, err := notifier.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(aliceAlerts) != 1 {
		t.Fatalf("expected 1 notification for Alice, got %d", len(aliceAlerts))
	}
	if aliceAlerts[0].Message != "New message from Nordlys Labs" {
		t.Fatalf("unexpected notification text: %q", aliceAlerts[0].Message)
	}
}

func TestGetThreadCreatesConversation(t *testing.T) {
	svc, _, db := newMessagingService(t)

	alice := createStudent(t, db, "alice", "Alice", "Martin")
	bob := createStudent(t, db, "bob", "Bob", "Diallo")

	_, messages, err := svc.GetThread(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(messages))
	}

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected viewing a fresh thread to create the conversation, got %d rows", count)
	}
}
