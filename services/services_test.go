package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Company{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newMessagingService(t *testing.T) (*services.MessagingService, *services.NotificationService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	directory := services.NewDirectoryService(db)
	notifier := services.NewNotificationService(db)
	return services.NewMessagingService(db, directory, notifier), notifier, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createStudent(t *testing.T, db *gorm.DB, username, firstName, lastName string) models.User {
	t.Helper()

	user := createUser(t, db, username, "student")
	student := models.Student{
		UserID:    user.ID,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("failed to create student profile for %s: %v", username, err)
	}
	return user
}

func createCompany(t *testing.T, db *gorm.DB, username, name string) models.User {
	t.Helper()

	user := createUser(t, db, username, "company")
	company := models.Company{
		UserID: user.ID,
		Name:   name,
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("failed to create company profile for %s: %v", username, err)
	}
	return user
}
