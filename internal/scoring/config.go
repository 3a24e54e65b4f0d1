// Package scoring turns the raw activity collections of one account into the
// aggregates of a year-in-review report: repository quality, language usage,
// contribution streaks, the productivity profile and the archetype label.
//
// Every function here is pure. An Engine only holds its Config, so a single
// Engine may be shared by concurrent report requests.
package scoring

import "time"

// RepositoryWeights configures the repository quality composite.
// Multipliers apply to log10 of the signal unless noted; caps bound each term.
type RepositoryWeights struct {
	StarMultiplier       float64 `mapstructure:"star-multiplier"`
	StarCap              float64 `mapstructure:"star-cap"`
	ForkMultiplier       float64 `mapstructure:"fork-multiplier"`
	ForkCap              float64 `mapstructure:"fork-cap"`
	RecencyBonus         float64 `mapstructure:"recency-bonus"`
	OriginalBonus        float64 `mapstructure:"original-bonus"`
	DescriptionBonus     float64 `mapstructure:"description-bonus"`
	DescriptionMinLength int     `mapstructure:"description-min-length"`
	TopicsBonus          float64 `mapstructure:"topics-bonus"`
	LanguageBonus        float64 `mapstructure:"language-bonus"`
	WatcherMultiplier    float64 `mapstructure:"watcher-multiplier"` // linear, not log
	WatcherCap           float64 `mapstructure:"watcher-cap"`
	ArchivedPenalty      float64 `mapstructure:"archived-penalty"`
	SizeMultiplier       float64 `mapstructure:"size-multiplier"`
	SizeCap              float64 `mapstructure:"size-cap"`
	IssueMultiplier      float64 `mapstructure:"issue-multiplier"`
	IssueCap             float64 `mapstructure:"issue-cap"`
	CreatedBonus         float64 `mapstructure:"created-bonus"`
}

// LanguageWeights configures the language diversity scorer.
type LanguageWeights struct {
	RepoWeight         float64 `mapstructure:"repo-weight"`
	RecentWeight       float64 `mapstructure:"recent-weight"`
	DiversityThreshold int     `mapstructure:"diversity-threshold"`
	DiversityStep      float64 `mapstructure:"diversity-step"`
	TopN               int     `mapstructure:"top-n"`
}

// ProductivityBounds holds the first hour of each time-of-day bucket and the
// peak hour reported when there is no event data.
type ProductivityBounds struct {
	DefaultPeakHour int `mapstructure:"default-peak-hour"`
	MorningStart    int `mapstructure:"morning-start"`
	AfternoonStart  int `mapstructure:"afternoon-start"`
	EveningStart    int `mapstructure:"evening-start"`
	LateNightStart  int `mapstructure:"late-night-start"`
}

// ArchetypeThresholds holds the guards of the classifier rules.
type ArchetypeThresholds struct {
	PRRatio            float64 `mapstructure:"pr-ratio"`
	MinPRs             int     `mapstructure:"min-prs"`
	ReviewRatio        float64 `mapstructure:"review-ratio"`
	MinReviews         int     `mapstructure:"min-reviews"`
	WeekendRatio       float64 `mapstructure:"weekend-ratio"`
	MinPatternCommits  int     `mapstructure:"min-pattern-commits"`
	GridPainterCommits int     `mapstructure:"grid-painter-commits"`
	ConsistentCommits  int     `mapstructure:"consistent-commits"`
	IssueRatio         float64 `mapstructure:"issue-ratio"`
	StarFollowers      int     `mapstructure:"star-followers"`
	StarTotalStars     int     `mapstructure:"star-total-stars"`
}

// Config is the complete set of weights, caps and thresholds used by an Engine.
type Config struct {
	TargetYear   int                 `mapstructure:"year"`
	Repository   RepositoryWeights   `mapstructure:"repository"`
	Language     LanguageWeights     `mapstructure:"language"`
	Productivity ProductivityBounds  `mapstructure:"productivity"`
	Archetype    ArchetypeThresholds `mapstructure:"archetype"`
}

// DefaultConfig returns the documented defaults anchored to the given year.
func DefaultConfig(year int) Config {
	return Config{
		TargetYear: year,
		Repository: RepositoryWeights{
			StarMultiplier:       12,
			StarCap:              35,
			ForkMultiplier:       6,
			ForkCap:              20,
			RecencyBonus:         0,
			OriginalBonus:        20,
			DescriptionBonus:     2,
			DescriptionMinLength: 10,
			TopicsBonus:          2,
			LanguageBonus:        3,
			WatcherMultiplier:    0.5,
			WatcherCap:           5,
			ArchivedPenalty:      20,
			SizeMultiplier:       3,
			SizeCap:              15,
			IssueMultiplier:      4,
			IssueCap:             8,
			CreatedBonus:         10,
		},
		Language: LanguageWeights{
			RepoWeight:         1,
			RecentWeight:       1,
			DiversityThreshold: 3,
			DiversityStep:      0.5,
			TopN:               3,
		},
		Productivity: ProductivityBounds{
			DefaultPeakHour: 14,
			MorningStart:    5,
			AfternoonStart:  12,
			EveningStart:    17,
			LateNightStart:  22,
		},
		Archetype: ArchetypeThresholds{
			PRRatio:            0.20,
			MinPRs:             20,
			ReviewRatio:        0.10,
			MinReviews:         10,
			WeekendRatio:       0.35,
			MinPatternCommits:  50,
			GridPainterCommits: 1200,
			ConsistentCommits:  400,
			IssueRatio:         0.15,
			StarFollowers:      500,
			StarTotalStars:     1000,
		},
	}
}

// Engine evaluates the scorers with a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine creates a new Engine instance.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// inTargetYear reports whether t falls within the target calendar year (UTC).
func (e *Engine) inTargetYear(t time.Time) bool {
	return !t.IsZero() && t.UTC().Year() == e.cfg.TargetYear
}
