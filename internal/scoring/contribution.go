package scoring

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// ContributionSummary is the reduction of a year of daily contribution counts.
type ContributionSummary struct {
	Total         int
	LongestStreak int
	CurrentStreak int
	Weekdays      [7]int // indexed by time.Weekday
	BusiestDay    time.Weekday
	Velocity      []domain.VelocityPoint
	Daily         domain.DailyStats
}

// AggregateContributions sorts the days chronologically and computes totals,
// streaks, the weekday histogram and the velocity series. The input slice is
// not modified. Counts are expected to be non-negative.
func (e *Engine) AggregateContributions(days []domain.DailyContribution) ContributionSummary {
	sorted := make([]domain.DailyContribution, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	summary := ContributionSummary{
		Velocity: make([]domain.VelocityPoint, 0, len(sorted)),
	}
	streak := 0
	for _, day := range sorted {
		summary.Total += day.Count
		if day.Count > 0 {
			summary.Weekdays[day.Date.Weekday()] += day.Count
			streak++
			if streak > summary.LongestStreak {
				summary.LongestStreak = streak
			}
		} else {
			streak = 0
		}
		summary.Velocity = append(summary.Velocity, domain.VelocityPoint{Date: day.Date, Count: day.Count})
	}
	summary.CurrentStreak = streak
	summary.BusiestDay = BusiestWeekday(summary.Weekdays)
	summary.Daily = dailyStats(sorted)
	return summary
}

// BusiestWeekday returns the slot with the largest value; ties go to the lowest index.
func BusiestWeekday(hist [7]int) time.Weekday {
	best := 0
	for i := 1; i < len(hist); i++ {
		if hist[i] > hist[best] {
			best = i
		}
	}
	return time.Weekday(best)
}

func dailyStats(days []domain.DailyContribution) domain.DailyStats {
	if len(days) == 0 {
		return domain.DailyStats{}
	}

	counts := make([]int, len(days))
	var ds domain.DailyStats
	for i, day := range days {
		counts[i] = day.Count
		if day.Count > 0 {
			ds.ActiveDays++
		}
	}

	data := stats.LoadRawData(counts)
	// The only error these return is for empty input, handled above.
	ds.Mean, _ = data.Mean()
	ds.Median, _ = data.Median()
	ds.P90, _ = data.Percentile(90)
	return ds
}
