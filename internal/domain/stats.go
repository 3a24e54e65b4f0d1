// Package domain contains the core data structures of the year-in-review report.
package domain

import "time"

// RepositoryRecord holds the fields of a single repository that feed the scorers.
// Absent numeric fields are zero and an empty Language means no primary language.
type RepositoryRecord struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Watchers    int       `json:"watchers"`
	Size        int       `json:"size"`
	OpenIssues  int       `json:"open_issues"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	IsFork      bool      `json:"is_fork"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	PushedAt    time.Time `json:"pushed_at"`
}

// LanguageStat is the accumulated usage of one language across a repository collection.
type LanguageStat struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	RepoCount   int     `json:"repo_count"`
	RecentCount int     `json:"recent_count"`
}

// DailyContribution is the contribution count for one calendar day.
type DailyContribution struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ContributionBreakdown holds the year's totals per contribution kind.
type ContributionBreakdown struct {
	Commits int `json:"commits"`
	PRs     int `json:"prs"`
	Issues  int `json:"issues"`
	Reviews int `json:"reviews"`
}

// Total returns the sum of all contribution kinds.
func (b ContributionBreakdown) Total() int {
	return b.Commits + b.PRs + b.Issues + b.Reviews
}

// CommunityStats holds the profile-level counters of the account.
type CommunityStats struct {
	Followers   int `json:"followers"`
	Following   int `json:"following"`
	PublicRepos int `json:"public_repos"`
	TotalStars  int `json:"total_stars"`
}

// VelocityPoint is one entry of the per-day velocity series.
type VelocityPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DailyStats summarises the distribution of daily contribution counts.
type DailyStats struct {
	ActiveDays int     `json:"active_days"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	P90        float64 `json:"p90"`
}

// NoRepositoriesName is the name carried by the top repository placeholder.
const NoRepositoriesName = "No repositories"

// NoLanguagesName is the name of the placeholder language entry.
const NoLanguagesName = "None"

// TopRepository is the standout repository of the year.
// Placeholder is set when the account has no repositories at all.
type TopRepository struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Language    string  `json:"language,omitempty"`
	Stars       int     `json:"stars"`
	Forks       int     `json:"forks"`
	Score       float64 `json:"score"`
	Placeholder bool    `json:"placeholder,omitempty"`
}

// YearReport is the assembled year-in-review for one account.
type YearReport struct {
	Username         string                `json:"username"`
	Year             int                   `json:"year"`
	TotalCommits     int                   `json:"total_commits"`
	LongestStreak    int                   `json:"longest_streak"`
	CurrentStreak    int                   `json:"current_streak"`
	BusiestDay       time.Weekday          `json:"busiest_day"`
	TopLanguages     []LanguageStat        `json:"top_languages"`
	TopRepository    TopRepository         `json:"top_repository"`
	Velocity         []VelocityPoint       `json:"velocity"`
	WeekdayHistogram [7]int                `json:"weekday_histogram"`
	Daily            DailyStats            `json:"daily"`
	Productivity     ProductivityProfile   `json:"productivity"`
	Breakdown        ContributionBreakdown `json:"breakdown"`
	Community        CommunityStats        `json:"community"`
	Archetype        Archetype             `json:"archetype"`
}
