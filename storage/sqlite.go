package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one persisted collection snapshot.
type kvEntry struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SQLiteKV implements KV over an embedded sqlite file, one JSON row per
// collection. Writes are synchronous; there is exactly one logical writer.
type SQLiteKV struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string, out any) (bool, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		return true, err
	}
	return true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := kvEntry{Key: key, Value: string(raw)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}
