package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"algomate/backend/config"
	"algomate/backend/middleware"
	"algomate/backend/models"
	"algomate/backend/resume"
	"algomate/backend/utils"
)

// ResumeController accepts resume analysis requests and exposes their status.
// The heavy lifting happens in the background resume service; these handlers
// only create and read ResumeAnalysis rows.
type ResumeController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Service *resume.Service
}

func NewResumeController(db *gorm.DB, cfg *config.Config, service *resume.Service) *ResumeController {
	return &ResumeController{DB: db, Cfg: cfg, Service: service}
}

type AnalyzeInput struct {
	FileURL  string `json:"file_url" validate:"required,url"`
	MimeType string `json:"mime_type" validate:"required,oneof=application/pdf image/png image/jpeg"`
}

// Analyze registers a resume for background processing and returns 202 with
// the analysis ID to poll.
func (rc *ResumeController) Analyze(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input AnalyzeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	rec := models.ResumeAnalysis{
		AnalysisID:       uuid.NewString(),
		UserID:           userID,
		FileURL:          input.FileURL,
		MimeType:         input.MimeType,
		ProcessingStatus: models.ResumeStatusPending,
	}
	if err := rc.DB.Create(&rec).Error; err != nil {
		return utils.InternalServerError(c, "Could not create analysis record")
	}

	rc.Service.StartProcessing(rec)

	return utils.Success(c, fiber.StatusAccepted, fiber.Map{
		"analysis_id": rec.AnalysisID,
		"status":      rec.ProcessingStatus,
	})
}

// GetStatus returns the processing state of one analysis, including the
// result once completed. Records are only visible to their owner.
func (rc *ResumeController) GetStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	analysisID := c.Params("id")

	var rec models.ResumeAnalysis
	err := rc.DB.Where("analysis_id = ? AND user_id = ?", analysisID, userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Analysis not found")
		}
		return utils.InternalServerError(c, "Could not query analysis")
	}

	response := fiber.Map{
		"analysis_id": rec.AnalysisID,
		"status":      rec.ProcessingStatus,
		"created_at":  rec.CreatedAt,
	}
	if rec.ProcessingStatus == models.ResumeStatusFailed {
		response["error"] = rec.ProcessingError
	}
	if rec.ProcessingStatus == models.ResumeStatusCompleted && len(rec.Result) > 0 {
		var result map[string]interface{}
		if err := json.Unmarshal(rec.Result, &result); err == nil {
			response["result"] = result
			response["ocr_confidence"] = rec.OCRConfidence
		}
	}

	return utils.Success(c, fiber.StatusOK, response)
}

// List returns the user's analyses, newest first, without result bodies.
func (rc *ResumeController) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var recs []models.ResumeAnalysis
	if err := rc.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(20).Find(&recs).Error; err != nil {
		return utils.InternalServerError(c, "Could not query analyses")
	}

	items := make([]fiber.Map, 0, len(recs))
	for _, rec := range recs {
		items = append(items, fiber.Map{
			"analysis_id": rec.AnalysisID,
			"status":      rec.ProcessingStatus,
			"created_at":  rec.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"analyses": items,
	})
}
