package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlatformCache stores the last fetched snapshot per (user, platform) pair.
// At most one live row exists per pair; writes are upsert-on-conflict and the
// row is hard-deleted only on explicit disconnect. The payload is opaque JSON;
// the raw snapshot stays authoritative and analytics are recomputed from it.
type PlatformCache struct {
	gorm.Model
	UserID      uint           `gorm:"not null;uniqueIndex:idx_platform_cache_user_platform"`
	Platform    string         `gorm:"not null;uniqueIndex:idx_platform_cache_user_platform"`
	Data        datatypes.JSON `gorm:"type:jsonb"`
	LastUpdated time.Time      `gorm:"not null"`
}
