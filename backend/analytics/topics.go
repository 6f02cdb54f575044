package analytics

import "sort"

// TopicMastery is one row of the ranked skill table.
type TopicMastery struct {
	Topic          string  `json:"topic"`
	ProblemsSolved int     `json:"problems_solved"`
	MasteryScore   float64 `json:"mastery_score"`
	MasteryLevel   string  `json:"mastery_level"`
	StrengthRank   int     `json:"strength_rank"`
}

// RankTopics builds a mastery table from per-topic solved counts. The score is
// the solved count against cfg.MasteryCeiling, scaled to 0-100 and clamped,
// which keeps it monotonic in problems solved. Rank is 1-based by solved count
// descending, ties broken by topic name so the order is deterministic. The
// result is truncated to topN entries (cfg.TopTopics when topN <= 0).
func RankTopics(solved map[string]int, topN int, cfg Config) []TopicMastery {
	if topN <= 0 {
		topN = cfg.TopTopics
	}
	if len(solved) == 0 {
		return nil
	}

	ranked := make([]TopicMastery, 0, len(solved))
	for topic, count := range solved {
		if count < 0 {
			count = 0
		}
		ranked = append(ranked, TopicMastery{Topic: topic, ProblemsSolved: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ProblemsSolved != ranked[j].ProblemsSolved {
			return ranked[i].ProblemsSolved > ranked[j].ProblemsSolved
		}
		return ranked[i].Topic < ranked[j].Topic
	})

	for i := range ranked {
		score := 0.0
		if cfg.MasteryCeiling > 0 {
			score = float64(ranked[i].ProblemsSolved) / float64(cfg.MasteryCeiling) * 100
			if score > 100 {
				score = 100
			}
		}
		ranked[i].MasteryScore = score
		ranked[i].MasteryLevel = cfg.TierForScore(score)
		ranked[i].StrengthRank = i + 1
	}

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
