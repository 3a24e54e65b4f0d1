// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/scoring"
)

// Reporter is the use case for building a year-in-review report.
// It orchestrates the fetching of raw inputs and runs the scoring engine over them.
type Reporter struct {
	fetcher  gateway.Fetcher
	engine   *scoring.Engine
	location *time.Location
	logger   *log.Logger
}

// Inputs are the fully materialised raw collections for one account.
type Inputs struct {
	Profile       domain.CommunityStats
	Repositories  []domain.RepositoryRecord
	Contributions *gateway.Contributions
	Hours         map[int]int
}

// NewReporter creates a new Reporter instance. Event timestamps are bucketed
// into hours of the day in loc.
func NewReporter(fetcher gateway.Fetcher, cfg scoring.Config, loc *time.Location, logger *log.Logger) *Reporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Reporter{
		fetcher:  fetcher,
		engine:   scoring.NewEngine(cfg),
		location: loc,
		logger:   logger,
	}
}

// Build fetches everything the report needs concurrently and assembles it.
// The first fetch error cancels the remaining fetches and is returned.
func (r *Reporter) Build(ctx context.Context, user string) (*domain.YearReport, error) {
	year := r.engine.Config().TargetYear
	r.logger.Printf("Usecase: Building %d report for %s...\n", year, user)

	var in Inputs
	var eventTimes []time.Time

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		in.Profile, err = r.fetcher.FetchProfile(egCtx, user)
		return err
	})

	eg.Go(func() error {
		var err error
		in.Repositories, err = r.fetcher.FetchRepositories(egCtx, user)
		return err
	})

	eg.Go(func() error {
		var err error
		in.Contributions, err = r.fetcher.FetchContributions(egCtx, user, year)
		return err
	})

	eg.Go(func() error {
		var err error
		eventTimes, err = r.fetcher.FetchEventTimes(egCtx, user)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	r.logger.Println("Usecase: All data fetched successfully.")

	in.Hours = HourHistogram(eventTimes, r.location)
	report := Assemble(r.engine, user, in)

	for _, repo := range in.Repositories {
		if repo.Name == report.TopRepository.Name {
			r.logger.Printf("Usecase: Top repository %s scored %+v\n", repo.Name, r.engine.RepositoryBreakdown(repo))
			break
		}
	}

	r.logger.Printf("Usecase: Classified %s as %q.\n", user, report.Archetype)
	return report, nil
}

// HourHistogram counts timestamps per hour of the day in loc.
func HourHistogram(times []time.Time, loc *time.Location) map[int]int {
	hours := make(map[int]int)
	for _, t := range times {
		hours[t.In(loc).Hour()]++
	}
	return hours
}

// Assemble runs every scorer over the inputs and builds the report value.
func Assemble(engine *scoring.Engine, user string, in Inputs) *domain.YearReport {
	var days []domain.DailyContribution
	var breakdown domain.ContributionBreakdown
	if in.Contributions != nil {
		days = in.Contributions.Days
		breakdown = in.Contributions.Breakdown
	}

	community := in.Profile
	community.TotalStars = 0
	for _, repo := range in.Repositories {
		community.TotalStars += repo.Stars
	}

	summary := engine.AggregateContributions(days)
	productivity := engine.AnalyzeProductivity(in.Hours)

	languages := engine.TopLanguages(in.Repositories)
	if len(languages) == 0 {
		languages = []domain.LanguageStat{{Name: domain.NoLanguagesName}}
	}

	archetype := engine.Classify(scoring.ClassifierInput{
		Breakdown:    breakdown,
		Community:    community,
		TotalCommits: summary.Total,
		Productivity: productivity,
		Weekdays:     summary.Weekdays,
	})

	return &domain.YearReport{
		Username:         user,
		Year:             engine.Config().TargetYear,
		TotalCommits:     summary.Total,
		LongestStreak:    summary.LongestStreak,
		CurrentStreak:    summary.CurrentStreak,
		BusiestDay:       summary.BusiestDay,
		TopLanguages:     languages,
		TopRepository:    engine.TopRepository(in.Repositories),
		Velocity:         summary.Velocity,
		WeekdayHistogram: summary.Weekdays,
		Daily:            summary.Daily,
		Productivity:     productivity,
		Breakdown:        breakdown,
		Community:        community,
		Archetype:        archetype,
	}
}
