package scoring

import (
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// ClassifierInput is everything the archetype rules look at.
type ClassifierInput struct {
	Breakdown    domain.ContributionBreakdown
	Community    domain.CommunityStats
	TotalCommits int
	Productivity domain.ProductivityProfile
	Weekdays     [7]int
}

// Signals are the derived ratios the rules are written against.
type Signals struct {
	ClassifierInput
	TotalActivity int
	PRRatio       float64
	ReviewRatio   float64
	IssueRatio    float64
	WeekendRatio  float64
}

// Rule pairs a predicate with the label it assigns.
type Rule struct {
	Label domain.Archetype
	Match func(Signals) bool
}

// NewSignals derives the classifier ratios. A ratio is zero when its
// denominator is zero.
func NewSignals(in ClassifierInput) Signals {
	s := Signals{ClassifierInput: in, TotalActivity: in.Breakdown.Total()}
	s.PRRatio = ratio(in.Breakdown.PRs, s.TotalActivity)
	s.ReviewRatio = ratio(in.Breakdown.Reviews, s.TotalActivity)
	s.IssueRatio = ratio(in.Breakdown.Issues, s.TotalActivity)
	s.WeekendRatio = ratio(in.Weekdays[time.Sunday]+in.Weekdays[time.Saturday], in.TotalCommits)
	return s
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Rules returns the classifier rules in evaluation order. The last rule
// always matches.
func (e *Engine) Rules() []Rule {
	t := e.cfg.Archetype
	return []Rule{
		{domain.PullRequestPro, func(s Signals) bool {
			return s.PRRatio > t.PRRatio && s.Breakdown.PRs > t.MinPRs
		}},
		{domain.Reviewer, func(s Signals) bool {
			return s.ReviewRatio > t.ReviewRatio && s.Breakdown.Reviews > t.MinReviews
		}},
		{domain.WeekendWarrior, func(s Signals) bool {
			return s.WeekendRatio > t.WeekendRatio && s.TotalCommits > t.MinPatternCommits
		}},
		{domain.NightOwl, func(s Signals) bool {
			return s.Productivity.TimeOfDay == domain.LateNight && s.TotalCommits > t.MinPatternCommits
		}},
		{domain.EarlyBird, func(s Signals) bool {
			return s.Productivity.TimeOfDay == domain.Morning && s.TotalCommits > t.MinPatternCommits
		}},
		{domain.GridPainter, func(s Signals) bool {
			return s.TotalCommits > t.GridPainterCommits
		}},
		{domain.Consistent, func(s Signals) bool {
			return s.TotalCommits > t.ConsistentCommits
		}},
		{domain.Planner, func(s Signals) bool {
			return s.IssueRatio > t.IssueRatio
		}},
		{domain.CommunityStar, func(s Signals) bool {
			return s.Community.Followers > t.StarFollowers || s.Community.TotalStars > t.StarTotalStars
		}},
		{domain.Tinkerer, func(Signals) bool { return true }},
	}
}

// Evaluate returns the label of the first matching rule, or Tinkerer when
// none match.
func Evaluate(rules []Rule, s Signals) domain.Archetype {
	for _, r := range rules {
		if r.Match(s) {
			return r.Label
		}
	}
	return domain.Tinkerer
}

// Classify assigns exactly one archetype to the aggregated metrics.
func (e *Engine) Classify(in ClassifierInput) domain.Archetype {
	return Evaluate(e.Rules(), NewSignals(in))
}
