package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"algomate/backend/analytics"
)

// commitsPerRepoEstimate backs the estimated commit total. Upstream computes
// commits as a flat multiplier of repository count rather than real history,
// so the figure is labeled estimated in the profile.
const commitsPerRepoEstimate = 25

// GitHubClient pulls profile, repositories and the contribution calendar from
// a GitHub-shaped REST/GraphQL API and normalizes everything into a Snapshot.
type GitHubClient struct {
	BaseURL    string
	GraphQLURL string
	Token      string
	HTTP       *http.Client
	Logger     *log.Logger
}

func NewGitHubClient(baseURL, graphqlURL, token string, logger *log.Logger) *GitHubClient {
	return &GitHubClient{
		BaseURL:    baseURL,
		GraphQLURL: graphqlURL,
		Token:      token,
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

func (gc *GitHubClient) Platform() string { return PlatformGitHub }

type githubProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// githubCalendar tolerates the two calendar representations the upstream API
// has been observed to return: the GraphQL weeks shape and a flat day list.
type githubCalendar struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []githubDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Contributions []githubDay `json:"contributions"`
}

type githubDay struct {
	Date  string   `json:"date"`
	Count int      `json:"contributionCount"`
	Alt   int      `json:"count"`
	Stamp flexTime `json:"timestamp"`
}

// Fetch retrieves the user's profile and contribution calendar. Individual
// malformed day records are dropped rather than failing the snapshot.
func (gc *GitHubClient) Fetch(ctx context.Context, handle string) (Snapshot, error) {
	snap := Snapshot{Platform: PlatformGitHub, FetchedAt: time.Now().UTC()}

	var profile githubProfile
	if err := gc.getJSON(ctx, fmt.Sprintf("%s/users/%s", gc.BaseURL, handle), &profile); err != nil {
		return snap, err
	}
	snap.Profile = Profile{
		Handle:                profile.Login,
		Name:                  profile.Name,
		AvatarURL:             profile.AvatarURL,
		Repositories:          profile.PublicRepos,
		Followers:             profile.Followers,
		TotalCommits:          profile.PublicRepos * commitsPerRepoEstimate,
		TotalCommitsEstimated: true,
	}

	calendar, err := gc.fetchCalendar(ctx, handle)
	if err != nil {
		// A profile without a calendar still renders; log and degrade.
		gc.Logger.Printf("github calendar fetch failed for %s: %v", handle, err)
		return snap, nil
	}
	snap.Calendar = calendar
	return snap, nil
}

func (gc *GitHubClient) fetchCalendar(ctx context.Context, handle string) ([]analytics.ActivityDay, error) {
	query := map[string]interface{}{
		"query": `query($login: String!) {
			user(login: $login) {
				contributionsCollection {
					contributionCalendar {
						weeks { contributionDays { date contributionCount } }
					}
				}
			}
		}`,
		"variables": map[string]string{"login": handle},
	}
	body, _ := json.Marshal(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if gc.Token != "" {
		req.Header.Set("Authorization", "Bearer "+gc.Token)
	}

	resp, err := gc.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if err := statusToErr(resp.StatusCode); err != nil {
		return nil, err
	}

	var payload githubCalendar
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	return parseGitHubCalendar(payload), nil
}

// parseGitHubCalendar flattens either calendar representation into canonical
// activity days. Days with no parseable date are skipped.
func parseGitHubCalendar(payload githubCalendar) []analytics.ActivityDay {
	raw := payload.Contributions
	for _, week := range payload.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		raw = append(raw, week.ContributionDays...)
	}

	days := make([]analytics.ActivityDay, 0, len(raw))
	for _, d := range raw {
		count := d.Count
		if count == 0 {
			count = d.Alt
		}
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			if d.Stamp.IsZero() {
				continue
			}
			date = d.Stamp.Time
		}
		days = append(days, analytics.ActivityDay{Date: date.UTC(), Count: count})
	}
	return days
}

func (gc *GitHubClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if gc.Token != "" {
		req.Header.Set("Authorization", "Bearer "+gc.Token)
	}

	resp, err := gc.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if err := statusToErr(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusToErr maps HTTP statuses onto the error taxonomy: auth failures are a
// reconnect state, everything else non-2xx is a transient unavailability.
func statusToErr(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrReconnectRequired
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
}
