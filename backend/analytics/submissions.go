package analytics

import (
	"sort"
	"time"
)

// Canonical verdicts. Platform clients map upstream verdict strings onto these
// before anything reaches the analytics layer.
const (
	VerdictAccepted     = "accepted"
	VerdictWrongAnswer  = "wrong_answer"
	VerdictTimeLimit    = "time_limit"
	VerdictMemoryLimit  = "memory_limit"
	VerdictRuntimeError = "runtime_error"
	VerdictCompileError = "compile_error"
	VerdictOther        = "other"
)

// Submission is one canonical attempt record. A zero SubmittedAt means the
// upstream timestamp was malformed; such records still count in pass/fail
// tallies but are excluded from date-ordered views.
type Submission struct {
	Problem     string    `json:"problem"`
	Verdict     string    `json:"verdict"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FailureShare is one failure category with its share of all failed attempts.
type FailureShare struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
}

// SubmissionAnalytics summarizes a window of recent attempts. Recomputed
// wholesale on every pass, no incremental state.
type SubmissionAnalytics struct {
	FirstTrySuccessRate       float64        `json:"first_try_success_rate"`
	AverageAttemptsPerProblem float64        `json:"average_attempts_per_problem"`
	DebuggingEfficiency       float64        `json:"debugging_efficiency"`
	CommonFailureTypes        []FailureShare `json:"common_failure_types"`
}

var failureLabels = map[string]string{
	VerdictWrongAnswer:  "Wrong Answer",
	VerdictTimeLimit:    "Time Limit Exceeded",
	VerdictMemoryLimit:  "Memory Limit Exceeded",
	VerdictRuntimeError: "Runtime Error",
	VerdictCompileError: "Compilation Error",
	VerdictOther:        "Other",
}

// AnalyzeSubmissions derives attempt-pattern statistics from recent
// submissions. "First attempt" per problem follows timestamp order; records
// with unknown dates keep their input order and sort after dated ones.
func AnalyzeSubmissions(subs []Submission, cfg Config) SubmissionAnalytics {
	var out SubmissionAnalytics
	if len(subs) == 0 {
		return out
	}

	ordered := make([]Submission, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].SubmittedAt, ordered[j].SubmittedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})

	type problemStats struct {
		attempts      int
		firstAccepted bool
		everAccepted  bool
	}
	problems := make(map[string]*problemStats)
	failures := make(map[string]int)
	totalFailures := 0

	for _, sub := range ordered {
		ps := problems[sub.Problem]
		if ps == nil {
			ps = &problemStats{}
			problems[sub.Problem] = ps
		}
		ps.attempts++
		if sub.Verdict == VerdictAccepted {
			ps.everAccepted = true
			if ps.attempts == 1 {
				ps.firstAccepted = true
			}
		} else {
			label, ok := failureLabels[sub.Verdict]
			if !ok {
				label = failureLabels[VerdictOther]
			}
			failures[label]++
			totalFailures++
		}
	}

	distinct := len(problems)
	firstTry := 0
	retriedAndSolved := 0
	retried := 0
	totalAttempts := 0
	for _, ps := range problems {
		totalAttempts += ps.attempts
		if ps.firstAccepted {
			firstTry++
		} else {
			retried++
			if ps.everAccepted {
				retriedAndSolved++
			}
		}
	}

	out.FirstTrySuccessRate = float64(firstTry) / float64(distinct) * 100
	out.AverageAttemptsPerProblem = float64(totalAttempts) / float64(distinct)
	if out.AverageAttemptsPerProblem < 1 {
		out.AverageAttemptsPerProblem = 1
	}
	if retried > 0 {
		out.DebuggingEfficiency = float64(retriedAndSolved) / float64(retried) * 100
	}

	if totalFailures > 0 {
		shares := make([]FailureShare, 0, len(failures))
		for label, count := range failures {
			shares = append(shares, FailureShare{
				Type:       label,
				Percentage: float64(count) / float64(totalFailures) * 100,
			})
		}
		sort.Slice(shares, func(i, j int) bool {
			if shares[i].Percentage != shares[j].Percentage {
				return shares[i].Percentage > shares[j].Percentage
			}
			return shares[i].Type < shares[j].Type
		})
		if len(shares) > cfg.TopFailureTypes {
			shares = shares[:cfg.TopFailureTypes]
		}
		out.CommonFailureTypes = shares
	}
	return out
}
