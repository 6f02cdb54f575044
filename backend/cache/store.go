package cache

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"algomate/backend/models"
)

// ErrMiss is returned when no cached record exists for a (user, platform) key.
var ErrMiss = errors.New("cache miss")

// Entry is a cached payload with its write timestamp.
type Entry struct {
	Payload     []byte
	LastUpdated time.Time
}

// Store persists one opaque payload per (user, platform) key.
type Store interface {
	Get(userID uint, platform string) (Entry, error)
	Put(userID uint, platform string, payload []byte, updatedAt time.Time) error
	Delete(userID uint, platform string) error
}

// GormStore keeps cache rows in the platform_caches table with
// upsert-on-conflict semantics, so at most one live row exists per key.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Get(userID uint, platform string) (Entry, error) {
	var row models.PlatformCache
	err := s.DB.Where("user_id = ? AND platform = ?", userID, platform).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, err
	}
	return Entry{Payload: []byte(row.Data), LastUpdated: row.LastUpdated}, nil
}

func (s *GormStore) Put(userID uint, platform string, payload []byte, updatedAt time.Time) error {
	row := models.PlatformCache{
		UserID:      userID,
		Platform:    platform,
		Data:        payload,
		LastUpdated: updatedAt,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "last_updated", "updated_at"}),
	}).Create(&row).Error
}

// Delete hard-deletes the row; used only on explicit platform disconnect.
func (s *GormStore) Delete(userID uint, platform string) error {
	return s.DB.Unscoped().
		Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&models.PlatformCache{}).Error
}
