package platform

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"algomate/backend/analytics"
)

// Platform tags. One cache row exists per (user, platform) pair.
const (
	PlatformGitHub = "github"
	PlatformJudge  = "judge"
	PlatformResume = "resume"
)

// ErrReconnectRequired marks an expired or revoked third-party token. It is
// surfaced as an explicit reconnect state, distinct from a transient failure.
var ErrReconnectRequired = errors.New("platform authorization expired, reconnect required")

// ErrUnavailable marks a transient upstream failure. Callers fall back to the
// last cached snapshot when one exists.
var ErrUnavailable = errors.New("platform temporarily unavailable")

// Profile is the canonical upstream profile representation.
type Profile struct {
	Handle       string `json:"handle"`
	Name         string `json:"name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	MaxRating    int    `json:"max_rating,omitempty"`
	Repositories int    `json:"repositories,omitempty"`
	Followers    int    `json:"followers,omitempty"`

	// TotalCommits is a flat multiplier of the repository count, not real
	// commit history. Kept as an estimate, matching upstream behavior.
	TotalCommits          int  `json:"total_commits,omitempty"`
	TotalCommitsEstimated bool `json:"total_commits_estimated,omitempty"`
}

// Snapshot is the canonical, platform-independent payload produced by every
// client. It is what gets cached and what the analytics layer consumes; no
// upstream schema leaks past this point.
type Snapshot struct {
	Platform    string                  `json:"platform"`
	Profile     Profile                 `json:"profile"`
	Calendar    []analytics.ActivityDay `json:"calendar"`
	TopicCounts map[string]int          `json:"topic_counts,omitempty"`
	Submissions []analytics.Submission  `json:"submissions,omitempty"`
	FetchedAt   time.Time               `json:"fetched_at"`
}

// flexTime tolerates the string-or-numeric Unix timestamps that upstream APIs
// mix freely. Malformed or out-of-range values decode to the zero time instead
// of failing the whole payload.
type flexTime struct {
	time.Time
}

// Plausible Unix-second bounds; anything outside is treated as malformed.
const (
	minUnixSeconds = 0
	maxUnixSeconds = 1 << 34
)

func (ft *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		ft.Time = time.Time{}
		return nil
	}
	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Some upstream variants send RFC3339 strings instead of seconds.
		if t, perr := time.Parse(time.RFC3339, string(data)); perr == nil {
			ft.Time = t.UTC()
			return nil
		}
		ft.Time = time.Time{}
		return nil
	}
	if seconds < minUnixSeconds || seconds > maxUnixSeconds {
		ft.Time = time.Time{}
		return nil
	}
	ft.Time = time.Unix(int64(seconds), 0).UTC()
	return nil
}
