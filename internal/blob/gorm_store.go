package blob

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the GORM model for one stored blob.
type Record struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName maps Record onto the blobs table created by the migrations.
func (Record) TableName() string { return "blobs" }

// GormStore is a Store backed by a single SQLite table via GORM.
// Writes are single-statement upserts, so a failed write never leaves
// a partially overwritten value behind.
type GormStore struct {
	db  *gorm.DB
	hub *Hub
}

// NewGormStore creates a GormStore over an already-opened database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, hub: NewHub()}
}

// Get returns the stored value for key, or ErrKeyNotFound.
func (s *GormStore) Get(key string) ([]byte, error) {
	var rec Record
	if err := s.db.Where("key = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

// Set replaces the value for key and publishes a change hint on success.
func (s *GormStore) Set(key string, value []byte) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return err
	}
	s.hub.Notify(key)
	return nil
}

// Subscribe registers for change hints on key. See Hub.Subscribe.
func (s *GormStore) Subscribe(key string) (<-chan struct{}, func()) {
	return s.hub.Subscribe(key)
}
