package platform

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algomate/backend/analytics"
)

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[test] ", log.LstdFlags)
}

func TestFlexTimeNumericAndString(t *testing.T) {
	var ft flexTime
	require.NoError(t, json.Unmarshal([]byte(`1717243200`), &ft))
	assert.Equal(t, int64(1717243200), ft.Unix())

	require.NoError(t, json.Unmarshal([]byte(`"1717243200"`), &ft))
	assert.Equal(t, int64(1717243200), ft.Unix())
}

func TestFlexTimeMalformedBecomesZero(t *testing.T) {
	for _, raw := range []string{`"not-a-number"`, `null`, `""`, `-5`, `99999999999999999`} {
		var ft flexTime
		require.NoError(t, json.Unmarshal([]byte(raw), &ft), "raw=%s", raw)
		assert.True(t, ft.IsZero(), "raw=%s", raw)
	}
}

func TestFlexTimeRFC3339(t *testing.T) {
	var ft flexTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T12:00:00Z"`), &ft))
	assert.Equal(t, 2025, ft.Year())
}

func TestGitHubFetchNormalizesBothCalendarShapes(t *testing.T) {
	rest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"login": "octocat", "name": "Octo Cat", "public_repos": 4, "followers": 10,
		})
	}))
	defer rest.Close()

	graphql := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"weeks":[{"contributionDays":[
				{"date":"2025-06-01","contributionCount":3},
				{"date":"bogus","contributionCount":9},
				{"date":"2025-06-02","contributionCount":0}
			]}]}}}}}`))
	}))
	defer graphql.Close()

	client := NewGitHubClient(rest.URL, graphql.URL, "token", testLogger())
	snap, err := client.Fetch(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", snap.Profile.Handle)
	assert.Equal(t, 4, snap.Profile.Repositories)
	assert.Equal(t, 100, snap.Profile.TotalCommits)
	assert.True(t, snap.Profile.TotalCommitsEstimated)

	// The bogus date is dropped, the two valid days survive.
	require.Len(t, snap.Calendar, 2)
	assert.Equal(t, 3, snap.Calendar[0].Count)
}

func TestGitHubFlatCalendarShape(t *testing.T) {
	var payload githubCalendar
	require.NoError(t, json.Unmarshal([]byte(`{"contributions":[
		{"date":"2025-01-05","count":7}
	]}`), &payload))

	days := parseGitHubCalendar(payload)
	require.Len(t, days, 1)
	assert.Equal(t, 7, days[0].Count)
}

func TestGitHubExpiredTokenIsReconnect(t *testing.T) {
	rest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer rest.Close()

	client := NewGitHubClient(rest.URL, rest.URL, "expired", testLogger())
	_, err := client.Fetch(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrReconnectRequired)
}

func TestGitHubServerErrorIsUnavailable(t *testing.T) {
	rest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer rest.Close()

	client := NewGitHubClient(rest.URL, rest.URL, "", testLogger())
	_, err := client.Fetch(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJudgeFetchNormalizesSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/user.info":
			w.Write([]byte(`{"status":"OK","result":[{"handle":"tourist","firstName":"Gennady","rating":3800,"maxRating":3979}]}`))
		case r.URL.Path == "/user.status":
			w.Write([]byte(`{"status":"OK","result":[
				{"id":1,"creationTimeSeconds":1717243200,"verdict":"OK","programmingLanguage":"GNU C++","problem":{"contestId":1,"index":"A","name":"Sum","tags":["math","implementation"]}},
				{"id":2,"creationTimeSeconds":"1717243300","verdict":"WRONG_ANSWER","programmingLanguage":"GNU C++","problem":{"contestId":1,"index":"B","name":"Graph","tags":["graphs"]}},
				{"id":3,"creationTimeSeconds":"oops","verdict":"TESTING","programmingLanguage":"GNU C++","problem":{"contestId":1,"index":"B","name":"Graph","tags":["graphs"]}}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, "", testLogger())
	snap, err := client.Fetch(context.Background(), "tourist")
	require.NoError(t, err)

	assert.Equal(t, "tourist", snap.Profile.Handle)
	assert.Equal(t, 3800, snap.Profile.Rating)

	require.Len(t, snap.Submissions, 3)
	assert.Equal(t, analytics.VerdictAccepted, snap.Submissions[0].Verdict)
	assert.Equal(t, analytics.VerdictWrongAnswer, snap.Submissions[1].Verdict)
	assert.Equal(t, analytics.VerdictOther, snap.Submissions[2].Verdict)
	assert.True(t, snap.Submissions[2].SubmittedAt.IsZero())

	assert.Equal(t, 1, snap.TopicCounts["math"])
	assert.Equal(t, 1, snap.TopicCounts["implementation"])
	assert.Equal(t, 0, snap.TopicCounts["graphs"]) // never accepted

	require.Len(t, snap.Calendar, 1)
	assert.Equal(t, 1, snap.Calendar[0].Count)
}

func TestJudgeEnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"FAILED","comment":"handle not found"}`))
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, "", testLogger())
	_, err := client.Fetch(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSolvedProblemCountedOncePerTag(t *testing.T) {
	raw := []judgeSubmission{}
	for i := 0; i < 3; i++ {
		s := judgeSubmission{Verdict: "OK"}
		s.Problem.ContestID = 7
		s.Problem.Index = "C"
		s.Problem.Tags = []string{"dp"}
		raw = append(raw, s)
	}
	_, tags, _ := normalizeJudgeSubmissions(raw)
	assert.Equal(t, 1, tags["dp"])
}

type stubFetcher struct {
	tag  string
	snap Snapshot
	err  error
}

func (s stubFetcher) Platform() string { return s.tag }
func (s stubFetcher) Fetch(ctx context.Context, handle string) (Snapshot, error) {
	time.Sleep(5 * time.Millisecond)
	return s.snap, s.err
}

func TestFetchAllToleratesPartialFailure(t *testing.T) {
	fetchers := map[string]Fetcher{
		PlatformGitHub: stubFetcher{tag: PlatformGitHub, snap: Snapshot{Platform: PlatformGitHub}},
		PlatformJudge:  stubFetcher{tag: PlatformJudge, err: errors.New("boom")},
	}
	handles := map[string]string{PlatformGitHub: "octocat", PlatformJudge: "tourist"}

	snaps, failures := FetchAll(context.Background(), fetchers, handles)
	assert.Len(t, snaps, 1)
	assert.Contains(t, snaps, PlatformGitHub)
	assert.Len(t, failures, 1)
	assert.Contains(t, failures, PlatformJudge)
}

func TestFetchAllSkipsUnconnectedPlatforms(t *testing.T) {
	fetchers := map[string]Fetcher{
		PlatformGitHub: stubFetcher{tag: PlatformGitHub},
	}
	snaps, failures := FetchAll(context.Background(), fetchers, map[string]string{})
	assert.Empty(t, snaps)
	assert.Empty(t, failures)
}
