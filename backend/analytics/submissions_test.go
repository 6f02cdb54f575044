package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sub(problem, verdict string, minute int) Submission {
	return Submission{
		Problem:     problem,
		Verdict:     verdict,
		Language:    "go",
		SubmittedAt: time.Date(2025, time.June, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestAnalyzeSubmissionsFirstTryAndAttempts(t *testing.T) {
	subs := []Submission{
		sub("P", VerdictWrongAnswer, 1),
		sub("P", VerdictWrongAnswer, 2),
		sub("P", VerdictAccepted, 3),
		sub("Q", VerdictAccepted, 4),
	}

	a := AnalyzeSubmissions(subs, DefaultConfig)
	assert.InDelta(t, 50.0, a.FirstTrySuccessRate, 1e-9)
	assert.InDelta(t, 2.0, a.AverageAttemptsPerProblem, 1e-9)
	assert.InDelta(t, 100.0, a.DebuggingEfficiency, 1e-9)
}

func TestAnalyzeSubmissionsOrderedByTimestampNotInput(t *testing.T) {
	// The accepted attempt arrives first in the input but is the later attempt.
	subs := []Submission{
		sub("P", VerdictAccepted, 10),
		sub("P", VerdictWrongAnswer, 5),
	}

	a := AnalyzeSubmissions(subs, DefaultConfig)
	assert.InDelta(t, 0.0, a.FirstTrySuccessRate, 1e-9)
}

func TestAnalyzeSubmissionsMalformedTimestampsStillCounted(t *testing.T) {
	subs := []Submission{
		sub("P", VerdictAccepted, 1),
		{Problem: "Q", Verdict: VerdictWrongAnswer}, // unknown date
		{Problem: "Q", Verdict: VerdictAccepted},    // unknown date
	}

	a := AnalyzeSubmissions(subs, DefaultConfig)
	// Both problems counted; Q's first recorded attempt failed.
	assert.InDelta(t, 50.0, a.FirstTrySuccessRate, 1e-9)
	assert.InDelta(t, 1.5, a.AverageAttemptsPerProblem, 1e-9)
}

func TestAnalyzeSubmissionsFailureBreakdown(t *testing.T) {
	subs := []Submission{
		sub("A", VerdictWrongAnswer, 1),
		sub("A", VerdictWrongAnswer, 2),
		sub("B", VerdictTimeLimit, 3),
		sub("C", VerdictRuntimeError, 4),
		sub("D", VerdictCompileError, 5),
		sub("E", VerdictWrongAnswer, 6),
	}

	a := AnalyzeSubmissions(subs, DefaultConfig)
	assert.Len(t, a.CommonFailureTypes, DefaultConfig.TopFailureTypes)
	assert.Equal(t, "Wrong Answer", a.CommonFailureTypes[0].Type)
	assert.InDelta(t, 50.0, a.CommonFailureTypes[0].Percentage, 1e-9)

	total := 0.0
	for _, f := range a.CommonFailureTypes {
		total += f.Percentage
	}
	assert.LessOrEqual(t, total, 100.0+1e-9)
}

func TestAnalyzeSubmissionsUnknownVerdictBucketsAsOther(t *testing.T) {
	subs := []Submission{
		sub("A", "judge_internal_error", 1),
	}
	a := AnalyzeSubmissions(subs, DefaultConfig)
	assert.Equal(t, "Other", a.CommonFailureTypes[0].Type)
}

func TestAnalyzeSubmissionsMinimumOneAttempt(t *testing.T) {
	a := AnalyzeSubmissions([]Submission{sub("A", VerdictAccepted, 1)}, DefaultConfig)
	assert.GreaterOrEqual(t, a.AverageAttemptsPerProblem, 1.0)
}

func TestAnalyzeSubmissionsEmpty(t *testing.T) {
	a := AnalyzeSubmissions(nil, DefaultConfig)
	assert.Equal(t, SubmissionAnalytics{}, a)
}
