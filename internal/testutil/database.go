// Package testutil provides test helpers for setting up in-memory blob
// stores, creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"spendwise/internal/blob"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestStore creates a blob store over an in-memory SQLite database
// with the blobs table migrated.
func SetupTestStore(t *testing.T) (*blob.GormStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&blob.Record{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return blob.NewGormStore(db), db
}

// TeardownTestStore closes the underlying database connection.
func TeardownTestStore(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
