package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// RepositoryScore holds each term of the quality composite after capping.
type RepositoryScore struct {
	Stars       float64 `json:"stars"`
	Forks       float64 `json:"forks"`
	Recency     float64 `json:"recency"`
	Original    float64 `json:"original"`
	Description float64 `json:"description"`
	Topics      float64 `json:"topics"`
	Language    float64 `json:"language"`
	Watchers    float64 `json:"watchers"`
	Archived    float64 `json:"archived"`
	Size        float64 `json:"size"`
	Issues      float64 `json:"issues"`
	Created     float64 `json:"created"`
}

// Total sums the terms.
func (s RepositoryScore) Total() float64 {
	return s.Stars + s.Forks + s.Recency + s.Original + s.Description + s.Topics +
		s.Language + s.Watchers + s.Archived + s.Size + s.Issues + s.Created
}

// RepositoryBreakdown computes every term of the quality composite for one repository.
func (e *Engine) RepositoryBreakdown(repo domain.RepositoryRecord) RepositoryScore {
	w := e.cfg.Repository
	var s RepositoryScore

	s.Stars = math.Min(math.Log10(float64(repo.Stars)+1)*w.StarMultiplier, w.StarCap)
	s.Forks = math.Min(math.Log10(float64(repo.Forks)+1)*w.ForkMultiplier, w.ForkCap)

	if e.inTargetYear(repo.PushedAt) {
		s.Recency = w.RecencyBonus
	}
	if !repo.IsFork {
		s.Original = w.OriginalBonus
	}
	if utf8.RuneCountInString(strings.TrimSpace(repo.Description)) > w.DescriptionMinLength {
		s.Description = w.DescriptionBonus
	}
	if len(repo.Topics) > 0 {
		s.Topics = w.TopicsBonus
	}
	if repo.Language != "" {
		s.Language = w.LanguageBonus
	}

	s.Watchers = math.Min(float64(repo.Watchers)*w.WatcherMultiplier, w.WatcherCap)

	if repo.IsArchived {
		s.Archived = -w.ArchivedPenalty
	}
	if repo.Size > 0 {
		s.Size = math.Min(math.Log10(float64(repo.Size))*w.SizeMultiplier, w.SizeCap)
	}
	if repo.OpenIssues > 0 {
		s.Issues = math.Min(math.Log10(float64(repo.OpenIssues)+1)*w.IssueMultiplier, w.IssueCap)
	}
	if e.inTargetYear(repo.CreatedAt) {
		s.Created = w.CreatedBonus
	}
	return s
}

// ScoreRepository returns the quality score of one repository. It may be negative.
func (e *Engine) ScoreRepository(repo domain.RepositoryRecord) float64 {
	return e.RepositoryBreakdown(repo).Total()
}

// TopRepository returns the highest scoring repository. Ties go to the first
// repository in input order; an empty collection yields the placeholder.
func (e *Engine) TopRepository(repos []domain.RepositoryRecord) domain.TopRepository {
	if len(repos) == 0 {
		return domain.TopRepository{Name: domain.NoRepositoriesName, Placeholder: true}
	}

	best, bestScore := 0, e.ScoreRepository(repos[0])
	for i := 1; i < len(repos); i++ {
		if score := e.ScoreRepository(repos[i]); score > bestScore {
			best, bestScore = i, score
		}
	}

	repo := repos[best]
	return domain.TopRepository{
		Name:        repo.Name,
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.Stars,
		Forks:       repo.Forks,
		Score:       bestScore,
	}
}
