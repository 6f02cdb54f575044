package analytics

import "math"

// Recommendation is advisory output derived from heuristic rules, not a
// guaranteed-accurate prediction.
type Recommendation struct {
	NextTopic        string  `json:"next_topic,omitempty"`
	NextLevel        string  `json:"next_level,omitempty"`
	CurrentLevel     string  `json:"current_level,omitempty"`
	ProblemsToGo     int     `json:"problems_to_go"`
	EstimatedWeeks   float64 `json:"estimated_weeks"`
	ThresholdVersion string  `json:"threshold_version"`
}

// Predict derives a next-milestone estimate from the strongest topic's tier
// ladder position and the current weekly solve rate. Weakest attempted topics
// are suggested as the next focus. All of this is a heuristic lookup; it is
// advisory and unverified by any ground truth.
func Predict(mastery []TopicMastery, momentum CodingMomentum, cfg Config) Recommendation {
	rec := Recommendation{ThresholdVersion: cfg.Version}
	if len(mastery) == 0 {
		return rec
	}

	strongest := mastery[0]
	rec.CurrentLevel = strongest.MasteryLevel

	// Weakest attempted topic becomes the recommended focus.
	for i := len(mastery) - 1; i >= 0; i-- {
		if mastery[i].ProblemsSolved > 0 {
			rec.NextTopic = mastery[i].Topic
			break
		}
	}

	next, ok := cfg.NextTier(strongest.MasteryLevel)
	if !ok {
		return rec
	}
	rec.NextLevel = next.Label

	// Scores are solved/ceiling, so the solved count needed for the next tier
	// follows directly from the tier's minimum score.
	targetSolved := int(math.Ceil(next.MinScore / 100 * float64(cfg.MasteryCeiling)))
	if gap := targetSolved - strongest.ProblemsSolved; gap > 0 {
		rec.ProblemsToGo = gap
		if momentum.AverageProblemsPerWeek > 0 {
			rec.EstimatedWeeks = math.Round(float64(gap)/momentum.AverageProblemsPerWeek*10) / 10
		}
	}
	return rec
}
