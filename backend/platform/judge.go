package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"algomate/backend/analytics"
)

// recentSubmissionWindow caps the attempt window kept for pattern analytics.
const recentSubmissionWindow = 200

// JudgeClient pulls profile, submissions and per-tag solved counts from a
// Codeforces-shaped judge API and normalizes them into a Snapshot. The
// submission calendar is derived by bucketing accepted submissions per day.
type JudgeClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Logger  *log.Logger
}

func NewJudgeClient(baseURL, apiKey string, logger *log.Logger) *JudgeClient {
	return &JudgeClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Logger:  logger,
	}
}

func (jc *JudgeClient) Platform() string { return PlatformJudge }

// judgeEnvelope is the judge's standard {status, comment, result} wrapper.
type judgeEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type judgeUser struct {
	Handle    string `json:"handle"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
}

type judgeSubmission struct {
	ID      int64    `json:"id"`
	Seconds flexTime `json:"creationTimeSeconds"`
	Verdict string   `json:"verdict"`
	Lang    string   `json:"programmingLanguage"`
	Problem struct {
		ContestID int      `json:"contestId"`
		Index     string   `json:"index"`
		Name      string   `json:"name"`
		Tags      []string `json:"tags"`
	} `json:"problem"`
}

// Fetch retrieves the judge snapshot: profile, recent submissions, per-tag
// solved counts and the derived submission calendar.
func (jc *JudgeClient) Fetch(ctx context.Context, handle string) (Snapshot, error) {
	snap := Snapshot{Platform: PlatformJudge, FetchedAt: time.Now().UTC()}

	var users []judgeUser
	if err := jc.call(ctx, "user.info?handles="+handle, &users); err != nil {
		return snap, err
	}
	if len(users) == 0 {
		return snap, fmt.Errorf("%w: empty user.info result", ErrUnavailable)
	}
	u := users[0]
	snap.Profile = Profile{
		Handle:    u.Handle,
		Name:      strings.TrimSpace(u.FirstName + " " + u.LastName),
		AvatarURL: u.Avatar,
		Rating:    u.Rating,
		MaxRating: u.MaxRating,
	}

	var raw []judgeSubmission
	if err := jc.call(ctx, "user.status?handle="+handle, &raw); err != nil {
		// Profile-only snapshot still renders; log and degrade.
		jc.Logger.Printf("judge submissions fetch failed for %s: %v", handle, err)
		return snap, nil
	}

	snap.Submissions, snap.TopicCounts, snap.Calendar = normalizeJudgeSubmissions(raw)
	return snap, nil
}

// normalizeJudgeSubmissions maps raw judge records into canonical submissions,
// per-tag solved counts (each problem counted once per tag) and a sparse
// accepted-per-day calendar.
func normalizeJudgeSubmissions(raw []judgeSubmission) ([]analytics.Submission, map[string]int, []analytics.ActivityDay) {
	subs := make([]analytics.Submission, 0, len(raw))
	tagCounts := make(map[string]int)
	solvedSeen := make(map[string]bool)
	perDay := make(map[time.Time]int)

	for _, r := range raw {
		problem := fmt.Sprintf("%d%s", r.Problem.ContestID, r.Problem.Index)
		subs = append(subs, analytics.Submission{
			Problem:     problem,
			Verdict:     mapJudgeVerdict(r.Verdict),
			Language:    r.Lang,
			SubmittedAt: r.Seconds.Time,
		})

		if r.Verdict != "OK" {
			continue
		}
		if !r.Seconds.IsZero() {
			day := r.Seconds.Time.Truncate(24 * time.Hour)
			perDay[day]++
		}
		if !solvedSeen[problem] {
			solvedSeen[problem] = true
			for _, tag := range r.Problem.Tags {
				tagCounts[tag]++
			}
		}
	}

	if len(subs) > recentSubmissionWindow {
		subs = subs[:recentSubmissionWindow]
	}

	calendar := make([]analytics.ActivityDay, 0, len(perDay))
	for day, count := range perDay {
		calendar = append(calendar, analytics.ActivityDay{Date: day, Count: count})
	}
	return subs, tagCounts, calendar
}

// mapJudgeVerdict folds upstream verdict strings into the canonical set.
func mapJudgeVerdict(verdict string) string {
	switch verdict {
	case "OK":
		return analytics.VerdictAccepted
	case "WRONG_ANSWER":
		return analytics.VerdictWrongAnswer
	case "TIME_LIMIT_EXCEEDED":
		return analytics.VerdictTimeLimit
	case "MEMORY_LIMIT_EXCEEDED":
		return analytics.VerdictMemoryLimit
	case "RUNTIME_ERROR":
		return analytics.VerdictRuntimeError
	case "COMPILATION_ERROR":
		return analytics.VerdictCompileError
	default:
		return analytics.VerdictOther
	}
}

func (jc *JudgeClient) call(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jc.BaseURL+"/"+endpoint, nil)
	if err != nil {
		return err
	}
	if jc.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+jc.APIKey)
	}

	resp, err := jc.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if err := statusToErr(resp.StatusCode); err != nil {
		return err
	}

	var envelope judgeEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Status != "OK" {
		return fmt.Errorf("%w: %s", ErrUnavailable, envelope.Comment)
	}
	return json.Unmarshal(envelope.Result, out)
}
