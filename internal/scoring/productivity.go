package scoring

import "github.com/naka-gawa/github-wrapped/internal/domain"

const hoursPerDay = 24

// AnalyzeProductivity derives the peak hour from an hour-of-day histogram.
// Hours are compared in ascending order so equal counts resolve to the earliest
// hour. Without any hour in range the configured default peak is reported.
func (e *Engine) AnalyzeProductivity(hours map[int]int) domain.ProductivityProfile {
	peak, peakCount := -1, 0
	for h := 0; h < hoursPerDay; h++ {
		count, ok := hours[h]
		if !ok {
			continue
		}
		if peak < 0 || count > peakCount {
			peak, peakCount = h, count
		}
	}
	if peak < 0 {
		peak = e.cfg.Productivity.DefaultPeakHour
	}
	return domain.ProductivityProfile{PeakHour: peak, TimeOfDay: e.TimeOfDay(peak)}
}

// TimeOfDay maps an hour onto its bucket. LateNight wraps around midnight.
func (e *Engine) TimeOfDay(hour int) domain.TimeOfDay {
	b := e.cfg.Productivity
	switch {
	case hour >= b.MorningStart && hour < b.AfternoonStart:
		return domain.Morning
	case hour >= b.AfternoonStart && hour < b.EveningStart:
		return domain.Afternoon
	case hour >= b.EveningStart && hour < b.LateNightStart:
		return domain.Evening
	default:
		return domain.LateNight
	}
}
