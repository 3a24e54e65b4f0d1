// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// calendarDateLayout is the format of contribution calendar dates.
const calendarDateLayout = "2006-01-02"

// maxEventPages bounds event pagination; GitHub serves at most 300 recent events.
const maxEventPages = 3

// Contributions holds a year of calendar days plus the per-kind totals.
type Contributions struct {
	Days      []domain.DailyContribution
	Breakdown domain.ContributionBreakdown
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, user string) (domain.CommunityStats, error)
	FetchRepositories(ctx context.Context, user string) ([]domain.RepositoryRecord, error)
	FetchContributions(ctx context.Context, user string, year int) (*Contributions, error)
	FetchEventTimes(ctx context.Context, user string) ([]time.Time, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	limiter       *rate.Limiter
	logger        *log.Logger
}

// contributionsQuery fetches the contribution calendar and totals for a date range.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions            githubv4.Int
			TotalPullRequestContributions       githubv4.Int
			TotalIssueContributions             githubv4.Int
			TotalPullRequestReviewContributions githubv4.Int
			ContributionCalendar                struct {
				Weeks []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Every request draws its token from the pool; REST pages are paced at
// requestsPerSecond (unlimited when <= 0).
func NewGitHubGateway(tokens oauth2.TokenSource, requestsPerSecond float64, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: tokens,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		limiter:       newLimiter(requestsPerSecond),
		logger:        logger,
	}, nil
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, user string) (domain.CommunityStats, error) {
	g.logger.Println("[1/4] Fetching profile using REST API...")
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.CommunityStats{}, err
	}
	u, _, err := g.restClient.Users.Get(ctx, user)
	if err != nil {
		return domain.CommunityStats{}, translateRESTError("fetch profile with REST API", err)
	}
	g.logger.Println("Completed fetching profile.")
	return domain.CommunityStats{
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.RepositoryRecord, error) {
	g.logger.Println("[2/4] Fetching repositories using REST API...")
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "pushed",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var records []domain.RepositoryRecord
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		repos, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, translateRESTError("list repositories with REST API", err)
		}
		for _, repo := range repos {
			records = append(records, toRepositoryRecord(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Completed fetching %d repositories.\n", len(records))
	return records, nil
}

func toRepositoryRecord(repo *github.Repository) domain.RepositoryRecord {
	return domain.RepositoryRecord{
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Watchers:    repo.GetWatchersCount(),
		Size:        repo.GetSize(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Language:    repo.GetLanguage(),
		Topics:      repo.Topics,
		IsFork:      repo.GetFork(),
		IsArchived:  repo.GetArchived(),
		CreatedAt:   repo.GetCreatedAt().Time,
		PushedAt:    repo.GetPushedAt().Time,
	}
}

func (g *GitHubGateway) FetchContributions(ctx context.Context, user string, year int) (*Contributions, error) {
	g.logger.Println("[3/4] Fetching contribution calendar using GraphQL API...")
	variables := map[string]interface{}{
		"login": githubv4.String(user),
		"from":  githubv4.DateTime{Time: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)},
		"to":    githubv4.DateTime{Time: time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)},
	}
	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, translateGraphQLError("execute GraphQL query for contributions", err)
	}

	cc := q.User.ContributionsCollection
	out := &Contributions{
		Breakdown: domain.ContributionBreakdown{
			Commits: int(cc.TotalCommitContributions),
			PRs:     int(cc.TotalPullRequestContributions),
			Issues:  int(cc.TotalIssueContributions),
			Reviews: int(cc.TotalPullRequestReviewContributions),
		},
	}
	for _, week := range cc.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(calendarDateLayout, string(day.Date))
			if err != nil {
				return nil, fmt.Errorf("invalid contribution date %q: %w", day.Date, err)
			}
			if day.ContributionCount < 0 {
				return nil, fmt.Errorf("negative contribution count on %s", day.Date)
			}
			out.Days = append(out.Days, domain.DailyContribution{Date: date, Count: int(day.ContributionCount)})
		}
	}
	g.logger.Printf("Completed fetching %d contribution days.\n", len(out.Days))
	return out, nil
}

// FetchEventTimes returns the creation time of the user's recent public events.
func (g *GitHubGateway) FetchEventTimes(ctx context.Context, user string) ([]time.Time, error) {
	g.logger.Println("[4/4] Fetching recent events using REST API...")
	opts := &github.ListOptions{PerPage: 100}
	var times []time.Time
	for page := 1; page <= maxEventPages; page++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		events, resp, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, user, true, opts)
		if err != nil {
			return nil, translateRESTError("list events with REST API", err)
		}
		for _, event := range events {
			if ts := event.GetCreatedAt(); !ts.IsZero() {
				times = append(times, ts.Time)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of events...")
	}
	g.logger.Printf("Completed fetching %d events.\n", len(times))
	return times, nil
}
