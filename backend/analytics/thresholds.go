package analytics

// Config gathers every tunable threshold used by the analytics passes so the
// heuristics can be adjusted and tested independently of the aggregation code.
type Config struct {
	// Version identifies the threshold table in cached payloads.
	Version string

	// LevelThresholds maps a daily count to a heat-map intensity level 0-4.
	// A count >= LevelThresholds[i] yields at least level i+1.
	LevelThresholds [4]int

	// MasteryTiers partitions [0,100] into qualitative labels, highest first.
	MasteryTiers []MasteryTier

	// MasteryCeiling is the solved count treated as full mastery of a topic.
	// Scores are solved/ceiling scaled to 0-100 and clamped, which keeps the
	// score monotonic in problems solved.
	MasteryCeiling int

	// TrendTolerance is the relative band around the baseline average inside
	// which productivity is considered stable.
	TrendTolerance float64

	// RecentWindowDays and BaselineWindowDays size the two momentum windows.
	RecentWindowDays   int
	BaselineWindowDays int

	// TopTopics caps the mastery table returned to the dashboard.
	TopTopics int

	// TopFailureTypes caps the failure breakdown returned to the dashboard.
	TopFailureTypes int
}

// MasteryTier is one row of the tier table.
type MasteryTier struct {
	MinScore float64 `json:"min_score"`
	Label    string  `json:"label"`
}

// DefaultConfig is the v1 threshold table. Tiers cover [0,100] with no gaps.
var DefaultConfig = Config{
	Version:         "v1",
	LevelThresholds: [4]int{1, 3, 5, 10},
	MasteryTiers: []MasteryTier{
		{MinScore: 90, Label: "Expert"},
		{MinScore: 70, Label: "Advanced"},
		{MinScore: 40, Label: "Intermediate"},
		{MinScore: 10, Label: "Novice"},
		{MinScore: 0, Label: "Beginner"},
	},
	MasteryCeiling:     100,
	TrendTolerance:     0.15,
	RecentWindowDays:   14,
	BaselineWindowDays: 14,
	TopTopics:          8,
	TopFailureTypes:    3,
}

// LevelForCount buckets a raw daily count into an intensity level 0-4.
// The bucketing is monotonic in count.
func (cfg Config) LevelForCount(count int) int {
	level := 0
	for i, threshold := range cfg.LevelThresholds {
		if count >= threshold {
			level = i + 1
		}
	}
	return level
}

// TierForScore returns the tier label for a mastery score.
func (cfg Config) TierForScore(score float64) string {
	for _, tier := range cfg.MasteryTiers {
		if score >= tier.MinScore {
			return tier.Label
		}
	}
	if len(cfg.MasteryTiers) == 0 {
		return ""
	}
	return cfg.MasteryTiers[len(cfg.MasteryTiers)-1].Label
}

// NextTier returns the tier above the given label, or "" when already at the top.
func (cfg Config) NextTier(label string) (MasteryTier, bool) {
	for i, tier := range cfg.MasteryTiers {
		if tier.Label == label && i > 0 {
			return cfg.MasteryTiers[i-1], true
		}
	}
	return MasteryTier{}, false
}
