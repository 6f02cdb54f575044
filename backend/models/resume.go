package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resume analysis processing states.
const (
	ResumeStatusPending    = "pending"
	ResumeStatusProcessing = "processing"
	ResumeStatusCompleted  = "completed"
	ResumeStatusFailed     = "failed"
)

// ResumeAnalysis tracks one resume through the background analysis pipeline.
type ResumeAnalysis struct {
	gorm.Model
	AnalysisID string `gorm:"unique;not null"`
	UserID     uint   `gorm:"not null;index"`
	FileURL    string `gorm:"not null"`
	MimeType   string

	ProcessingStatus string `gorm:"default:pending"`
	ProcessingError  string

	ExtractedText string
	OCRConfidence float64
	Result        datatypes.JSON `gorm:"type:jsonb"`
}
