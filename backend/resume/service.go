package resume

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"algomate/backend/cache"
	"algomate/backend/models"
	"algomate/backend/platform"
)

// processTimeout bounds one full background analysis run.
const processTimeout = 3 * time.Minute

// Service drives a resume through the OCR -> AI analysis -> persist pipeline.
// Processing runs in the background; the record's processing_status is the
// contract with the status endpoint.
type Service struct {
	DB       *gorm.DB
	Analyzer *Analyzer
	Cache    cache.Store
	Logger   *log.Logger
}

func NewService(db *gorm.DB, analyzer *Analyzer, store cache.Store, logger *log.Logger) *Service {
	return &Service{DB: db, Analyzer: analyzer, Cache: store, Logger: logger}
}

// StartProcessing kicks off the background pipeline for a pending record.
func (s *Service) StartProcessing(rec models.ResumeAnalysis) {
	go s.process(rec)
}

func (s *Service) process(rec models.ResumeAnalysis) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	s.setStatus(rec.AnalysisID, models.ResumeStatusProcessing, "")

	ocr, err := s.Analyzer.ExtractText(ctx, rec.FileURL, rec.MimeType)
	if err != nil {
		s.Logger.Printf("resume %s: text extraction failed: %v", rec.AnalysisID, err)
		s.setStatus(rec.AnalysisID, models.ResumeStatusFailed, "text extraction failed: "+err.Error())
		return
	}

	analysis, err := s.Analyzer.Analyze(ctx, ocr.ExtractedText)
	if err != nil {
		// Degrade to the heuristic analysis rather than failing the run.
		s.Logger.Printf("resume %s: analyzer unavailable, using fallback: %v", rec.AnalysisID, err)
		analysis = FallbackAnalysis(ocr.ExtractedText)
	}

	result, err := json.Marshal(analysis)
	if err != nil {
		s.setStatus(rec.AnalysisID, models.ResumeStatusFailed, "encode analysis: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"extracted_text":    ocr.ExtractedText,
		"ocr_confidence":    ocr.Confidence,
		"result":            result,
		"processing_status": models.ResumeStatusCompleted,
		"processing_error":  "",
	}
	if err := s.DB.Model(&models.ResumeAnalysis{}).
		Where("analysis_id = ?", rec.AnalysisID).
		Updates(updates).Error; err != nil {
		s.Logger.Printf("resume %s: persist failed: %v", rec.AnalysisID, err)
		return
	}

	s.cacheDashboardPayload(rec, analysis)
}

// cacheDashboardPayload upserts a dashboard-ready subset of the analysis
// under the "resume" platform tag. A write failure is logged and swallowed;
// the completed record remains queryable either way.
func (s *Service) cacheDashboardPayload(rec models.ResumeAnalysis, analysis Analysis) {
	payload := map[string]interface{}{
		"analysis_id":      rec.AnalysisID,
		"skills":           analysis.Skills,
		"experience_level": analysis.ExperienceLevel,
		"focus_areas":      analysis.FocusAreas,
		"insights":         analysis.OverallInsights,
		"top_strengths":    truncate(analysis.StandoutQualities, 3),
		"red_flags":        truncate(analysis.RedFlags, 2),
		"last_updated":     time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Printf("resume %s: encode cache payload: %v", rec.AnalysisID, err)
		return
	}
	if err := s.Cache.Put(rec.UserID, platform.PlatformResume, data, time.Now().UTC()); err != nil {
		s.Logger.Printf("resume %s: cache write failed: %v", rec.AnalysisID, err)
	}
}

func (s *Service) setStatus(analysisID, status, processingError string) {
	err := s.DB.Model(&models.ResumeAnalysis{}).
		Where("analysis_id = ?", analysisID).
		Updates(map[string]interface{}{
			"processing_status": status,
			"processing_error":  processingError,
		}).Error
	if err != nil {
		s.Logger.Printf("resume %s: status update failed: %v", analysisID, err)
	}
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
