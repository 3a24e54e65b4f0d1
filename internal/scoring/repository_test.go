package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

const testYear = 2025

func inYear(month time.Month, day int) time.Time {
	return time.Date(testYear, month, day, 12, 0, 0, 0, time.UTC)
}

func TestEngine_RepositoryBreakdown(t *testing.T) {
	engine := NewEngine(DefaultConfig(testYear))

	testCases := []struct {
		name     string
		repo     domain.RepositoryRecord
		expected float64
	}{
		{
			name:     "zero record only earns the original work bonus",
			repo:     domain.RepositoryRecord{},
			expected: 20,
		},
		{
			name:     "zero fork scores nothing",
			repo:     domain.RepositoryRecord{IsFork: true},
			expected: 0,
		},
		{
			name:     "archived fork goes negative",
			repo:     domain.RepositoryRecord{IsFork: true, IsArchived: true},
			expected: -20,
		},
		{
			name: "fully populated repository",
			repo: domain.RepositoryRecord{
				Name:        "wrapped",
				Description: "A year in review generator",
				Stars:       99,
				Forks:       9,
				Watchers:    4,
				Size:        1000,
				OpenIssues:  9,
				Language:    "Go",
				Topics:      []string{"github"},
				CreatedAt:   inYear(time.March, 1),
				PushedAt:    inYear(time.December, 1),
			},
			// 24 stars + 6 forks + 20 original + 2 desc + 2 topics + 3 lang + 2 watchers + 9 size + 4 issues + 10 created
			expected: 82,
		},
		{
			name: "every capped term saturates",
			repo: domain.RepositoryRecord{
				IsFork:     true,
				Stars:      1_000_000,
				Forks:      1_000_000,
				Watchers:   1_000,
				Size:       1_000_000_000,
				OpenIssues: 1_000_000,
			},
			expected: 35 + 20 + 5 + 15 + 8,
		},
		{
			name:     "short description after trimming earns nothing",
			repo:     domain.RepositoryRecord{IsFork: true, Description: "    tiny repo     "},
			expected: 0,
		},
		{
			name:     "created in another year earns no bonus",
			repo:     domain.RepositoryRecord{IsFork: true, CreatedAt: time.Date(testYear-1, time.June, 1, 0, 0, 0, 0, time.UTC)},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, engine.ScoreRepository(tc.repo), 1e-9)
		})
	}
}

func TestEngine_StarScoreIsBounded(t *testing.T) {
	engine := NewEngine(DefaultConfig(testYear))
	for _, stars := range []int{0, 1, 9, 99, 821, 1000, 50_000, 10_000_000} {
		s := engine.RepositoryBreakdown(domain.RepositoryRecord{Stars: stars}).Stars
		assert.GreaterOrEqual(t, s, 0.0, "stars=%d", stars)
		assert.LessOrEqual(t, s, 35.0, "stars=%d", stars)
	}
}

func TestEngine_ArchivedPenalty(t *testing.T) {
	engine := NewEngine(DefaultConfig(testYear))
	repo := domain.RepositoryRecord{
		Name:        "old",
		Description: "Something that used to matter",
		Stars:       42,
		Forks:       3,
		Language:    "C",
		PushedAt:    inYear(time.January, 2),
	}
	archived := repo
	archived.IsArchived = true

	assert.InDelta(t, engine.ScoreRepository(repo)-20, engine.ScoreRepository(archived), 1e-9)
}

func TestEngine_RecencyBonus(t *testing.T) {
	cfg := DefaultConfig(testYear)
	repo := domain.RepositoryRecord{IsFork: true, PushedAt: inYear(time.July, 4)}

	assert.Zero(t, NewEngine(cfg).ScoreRepository(repo), "recency is disabled by default")

	cfg.Repository.RecencyBonus = 7
	assert.Equal(t, 7.0, NewEngine(cfg).ScoreRepository(repo))
}

func TestEngine_ScoreRepositoryIsPure(t *testing.T) {
	engine := NewEngine(DefaultConfig(testYear))
	repo := domain.RepositoryRecord{Stars: 7, Forks: 2, Size: 300, Topics: []string{"a"}}

	first := engine.ScoreRepository(repo)
	second := engine.ScoreRepository(repo)
	assert.Equal(t, first, second)
}

func TestEngine_TopRepository(t *testing.T) {
	engine := NewEngine(DefaultConfig(testYear))

	testCases := []struct {
		name     string
		repos    []domain.RepositoryRecord
		expected string
	}{
		{
			name:     "empty collection yields the placeholder",
			repos:    nil,
			expected: domain.NoRepositoriesName,
		},
		{
			name: "highest score wins",
			repos: []domain.RepositoryRecord{
				{Name: "small", Stars: 1},
				{Name: "big", Stars: 500},
				{Name: "fork", Stars: 900, IsFork: true},
			},
			expected: "big",
		},
		{
			name: "ties go to the first repository",
			repos: []domain.RepositoryRecord{
				{Name: "first", Stars: 10},
				{Name: "second", Stars: 10},
			},
			expected: "first",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			top := engine.TopRepository(tc.repos)
			assert.Equal(t, tc.expected, top.Name)
			assert.Equal(t, len(tc.repos) == 0, top.Placeholder)
		})
	}
}
