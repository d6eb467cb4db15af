package services_test

import (
	"errors"
	"testing"

	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
	"github.com/google/uuid"
)

func TestResolveIdentityStudentName(t *testing.T) {
	db := newTestDB(t)
	directory := services.NewDirectoryService(db)

	user := createStudent(t, db, "alice", "Alice", "Martin")

	identity, err := directory.ResolveIdentity(user.ID)
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if identity.Kind != services.IdentityKindStudent {
		t.Fatalf("expected student kind, got %q", identity.Kind)
	}
	if identity.DisplayName != "Alice Martin" {
		t.Fatalf("expected full name, got %q", identity.DisplayName)
	}
}

func TestResolveIdentityCompanyName(t *testing.T) {
	db := newTestDB(t)
	directory := services.NewDirectoryService(db)

	user := createCompany(t, db, "nordlys", "Nordlys Labs")

	identity, err := directory.ResolveIdentity(user.ID)
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if identity.Kind != services.IdentityKindCompany {
		t.Fatalf("expected company kind, got %q", identity.Kind)
	}
	if identity.DisplayName != "Nordlys Labs" {
		t.Fatalf("expected company name, got %q", identity.DisplayName)
	}
}

func TestResolveIdentityFallsBackToUsername(t *testing.T) {
	db := newTestDB(t)
	directory := services.NewDirectoryService(db)

	user := createUser(t, db, "plainuser", "student")

	identity, err := directory.ResolveIdentity(user.ID)
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if identity.Kind != services.IdentityKindPlain {
		t.Fatalf("expected plain kind, got %q", identity.Kind)
	}
	if identity.DisplayName != "plainuser" {
		t.Fatalf("expected username fallback, got %q", identity.DisplayName)
	}
}

func TestResolveIdentityIncompleteStudentProfile(t *testing.T) {
	db := newTestDB(t)
	directory := services.NewDirectoryService(db)

	user := createUser(t, db, "halfdone", "student")
	student := models.Student{UserID: user.ID, FirstName: "OnlyFirst"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	identity, err := directory.ResolveIdentity(user.ID)
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if identity.DisplayName != "halfdone" {
		t.Fatalf("expected username fallback for incomplete profile, got %q", identity.DisplayName)
	}
}

func TestResolveIdentityUnknownUser(t *testing.T) {
	db := newTestDB(t)
	directory := services.NewDirectoryService(db)

	if _, err := directory.ResolveIdentity(uuid.New()); !errors.Is(err, services.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}
