package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	AvatarURL    string
}

// PlatformConnection links a user to a third-party coding platform handle.
// Disconnecting removes the row and hard-deletes the matching cache entry.
type PlatformConnection struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_platform_connections_user_platform"`
	Platform string `gorm:"not null;uniqueIndex:idx_platform_connections_user_platform"` // github, judge
	Handle   string `gorm:"not null"`
}
