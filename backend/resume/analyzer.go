package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Analysis is the structured output of the external AI resume analyzer.
// Nested sections stay loosely typed; the upstream model fills them with
// free-form keys and only the top-level shape is contractual.
type Analysis struct {
	Skills                map[string]interface{}   `json:"skills"`
	ExperienceLevel       string                   `json:"experience_level"`
	FocusAreas            []string                 `json:"focus_areas"`
	ExperienceAnalysis    map[string]interface{}   `json:"experience_analysis,omitempty"`
	ResumeQuality         map[string]interface{}   `json:"resume_quality,omitempty"`
	SkillGapAnalysis      map[string]interface{}   `json:"skill_gap_analysis,omitempty"`
	MarketCompetitiveness map[string]interface{}   `json:"market_competitiveness,omitempty"`
	ATSOptimization       map[string]interface{}   `json:"ats_optimization,omitempty"`
	CareerTrajectory      map[string]interface{}   `json:"career_trajectory,omitempty"`
	Recommendations       []map[string]interface{} `json:"detailed_recommendations,omitempty"`
	RedFlags              []string                 `json:"red_flags,omitempty"`
	StandoutQualities     []string                 `json:"standout_qualities,omitempty"`
	OverallInsights       string                   `json:"overall_insights"`
}

// OCRResult is the text-extraction response from the external service.
type OCRResult struct {
	ExtractedText string  `json:"extracted_text"`
	Confidence    float64 `json:"confidence"`
}

const (
	maxAnalyzeAttempts = 3
	analyzeTimeout     = 45 * time.Second
	maxPromptText      = 2000
	minPromptText      = 500
)

// ErrAnalyzerUnavailable is returned after all analyze attempts fail; callers
// fall back to the heuristic analysis.
var ErrAnalyzerUnavailable = errors.New("resume analyzer unavailable")

// Analyzer is the client for the external OCR/AI analysis service. The
// service itself is an external collaborator; this client only shapes
// requests, repairs sloppy model output and enforces timeouts.
type Analyzer struct {
	OCRURL     string
	AnalyzeURL string
	APIKey     string
	HTTP       *http.Client
	Logger     *log.Logger

	// sleep is injectable for tests; defaults to time.Sleep.
	sleep func(time.Duration)
}

func NewAnalyzer(ocrURL, analyzeURL, apiKey string, logger *log.Logger) *Analyzer {
	return &Analyzer{
		OCRURL:     ocrURL,
		AnalyzeURL: analyzeURL,
		APIKey:     apiKey,
		HTTP:       &http.Client{Timeout: analyzeTimeout},
		Logger:     logger,
		sleep:      time.Sleep,
	}
}

// ExtractText asks the external service to OCR the uploaded file.
func (a *Analyzer) ExtractText(ctx context.Context, fileURL, mimeType string) (OCRResult, error) {
	var result OCRResult
	body, _ := json.Marshal(map[string]string{"file_url": fileURL, "mime_type": mimeType})
	if err := a.post(ctx, a.OCRURL, body, &result); err != nil {
		return OCRResult{}, err
	}
	return result, nil
}

// Analyze sends the extracted text for AI analysis with retry, backoff and
// output repair. The prompt text shrinks on every retry, mirroring the
// timeout behavior of the upstream model. After the final attempt fails the
// caller is expected to use FallbackAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	for attempt := 0; attempt < maxAnalyzeAttempts; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<attempt) * time.Second
			if wait > 10*time.Second {
				wait = 10 * time.Second
			}
			a.sleep(wait)
		}

		limit := maxPromptText - attempt*500
		if limit < minPromptText {
			limit = minPromptText
		}
		prompt := text
		if len(prompt) > limit {
			prompt = prompt[:limit]
		}

		analysis, err := a.analyzeOnce(ctx, prompt)
		if err == nil {
			return analysis, nil
		}
		a.Logger.Printf("resume analyze attempt %d failed: %v", attempt+1, err)
	}
	return Analysis{}, ErrAnalyzerUnavailable
}

func (a *Analyzer) analyzeOnce(ctx context.Context, text string) (Analysis, error) {
	body, _ := json.Marshal(map[string]string{"text": text})

	callCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	var raw struct {
		Response string `json:"response"`
	}
	if err := a.post(callCtx, a.AnalyzeURL, body, &raw); err != nil {
		return Analysis{}, err
	}

	repaired := RepairJSON(raw.Response)
	var analysis Analysis
	if err := json.Unmarshal([]byte(repaired), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("unparseable analyzer output: %w", err)
	}
	return analysis, nil
}

func (a *Analyzer) post(ctx context.Context, url string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analyzer service status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// RepairJSON cleans the model's sloppy JSON output: markdown fences are
// stripped, text outside the outer braces is dropped, trailing commas are
// removed and unbalanced trailing closers are trimmed.
func RepairJSON(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	text = trailingCommaRe.ReplaceAllString(text, "$1")

	for len(text) > 0 {
		last := text[len(text)-1]
		if last == ')' && strings.Count(text, ")") > strings.Count(text, "(") {
			text = text[:len(text)-1]
			continue
		}
		if last == ']' && strings.Count(text, "]") > strings.Count(text, "[") {
			text = text[:len(text)-1]
			continue
		}
		if last == '}' && strings.Count(text, "}") > strings.Count(text, "{") {
			text = text[:len(text)-1]
			continue
		}
		break
	}

	return trailingCommaRe.ReplaceAllString(text, "$1")
}
