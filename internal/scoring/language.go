package scoring

import (
	"sort"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// ScoreLanguages accumulates per-language weight over the non-fork repositories
// that have a primary language, then applies the diversity bonus. The result is
// sorted by descending weight; equal weights keep first-sighting order.
func (e *Engine) ScoreLanguages(repos []domain.RepositoryRecord) []domain.LanguageStat {
	w := e.cfg.Language
	stats := make([]domain.LanguageStat, 0)
	index := make(map[string]int)

	for _, repo := range repos {
		if repo.IsFork || repo.Language == "" {
			continue
		}
		i, ok := index[repo.Language]
		if !ok {
			i = len(stats)
			index[repo.Language] = i
			stats = append(stats, domain.LanguageStat{Name: repo.Language})
		}
		stats[i].Weight += w.RepoWeight
		stats[i].RepoCount++
		if e.inTargetYear(repo.PushedAt) {
			stats[i].Weight += w.RecentWeight
			stats[i].RecentCount++
		}
	}

	for i := range stats {
		stats[i].Weight += e.diversityBonus(stats[i].RepoCount)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Weight > stats[j].Weight
	})
	return stats
}

// diversityBonus rewards breadth beyond the threshold, uncapped.
func (e *Engine) diversityBonus(repoCount int) float64 {
	w := e.cfg.Language
	if repoCount < w.DiversityThreshold {
		return 0
	}
	return float64(repoCount-w.DiversityThreshold) * w.DiversityStep
}

// TopLanguages returns at most the configured number of highest weighted languages.
func (e *Engine) TopLanguages(repos []domain.RepositoryRecord) []domain.LanguageStat {
	stats := e.ScoreLanguages(repos)
	if n := e.cfg.Language.TopN; n >= 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
