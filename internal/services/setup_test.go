package services

import (
	"testing"
	"time"

	"freeworldfirst/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// In-memory SQLite is per-connection; keep the pool at one.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Alternative{},
		&models.Vote{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsAdmin:  isAdmin,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return &user
}

func createTestAlternative(t *testing.T, gdb *gorm.DB, submitterID string, createdAt time.Time) *models.Alternative {
	t.Helper()

	alt := models.Alternative{
		Title:       "Signal",
		Replaces:    "WhatsApp",
		Description: "A secure messenger with end-to-end encryption.",
		Reasons:     "WhatsApp collects metadata and belongs to Meta.",
		Benefits:    "Full end-to-end encryption, open source, no ads.",
		Website:     "https://signal.org",
		Category:    "Communication",
		SubmitterID: submitterID,
		CreatedAt:   createdAt,
	}
	if err := gdb.Create(&alt).Error; err != nil {
		t.Fatalf("Failed to create alternative: %v", err)
	}
	return &alt
}
