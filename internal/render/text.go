package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// TextOptions controls the text renderer.
type TextOptions struct {
	UseColors bool
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// FormatDate is the label used for velocity entries.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2")
}

// FormatHour renders an hour of the day on a 12-hour clock.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// Text writes a human readable summary of the report.
func Text(w io.Writer, r *domain.YearReport, opts TextOptions) error {
	title, accent, dim := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if opts.UseColors {
		title = color.New(color.FgHiGreen, color.Bold).SprintFunc()
		accent = color.New(color.FgCyan, color.Bold).SprintFunc()
		dim = color.New(color.FgHiBlack).SprintFunc()
	}

	lines := []string{
		title(fmt.Sprintf("%s's %d in review", r.Username, r.Year)),
		"",
		fmt.Sprintf("Archetype:      %s  %s", accent(string(r.Archetype)), dim(r.Archetype.Description())),
		fmt.Sprintf("Total commits:  %s", accent(strconv.Itoa(r.TotalCommits))),
		fmt.Sprintf("Longest streak: %d days (current %d)", r.LongestStreak, r.CurrentStreak),
		fmt.Sprintf("Busiest day:    %s", r.BusiestDay),
		fmt.Sprintf("Peak hour:      %s (%s)", FormatHour(r.Productivity.PeakHour), r.Productivity.TimeOfDay),
		fmt.Sprintf("Breakdown:      %d commits, %d PRs, %d issues, %d reviews",
			r.Breakdown.Commits, r.Breakdown.PRs, r.Breakdown.Issues, r.Breakdown.Reviews),
		fmt.Sprintf("Community:      %d followers, %d following, %d public repos, %d stars",
			r.Community.Followers, r.Community.Following, r.Community.PublicRepos, r.Community.TotalStars),
		fmt.Sprintf("Top repository: %s", topRepository(r.TopRepository)),
		fmt.Sprintf("Daily average:  %.2f (median %.1f, p90 %.1f, %d active days)",
			r.Daily.Mean, r.Daily.Median, r.Daily.P90, r.Daily.ActiveDays),
	}
	if len(r.Velocity) > 0 {
		first, last := r.Velocity[0], r.Velocity[len(r.Velocity)-1]
		lines = append(lines, fmt.Sprintf("Velocity:       %s %s %s",
			dim(FormatDate(first.Date)), Sparkline(WeeklyTotals(r.Velocity)), dim(FormatDate(last.Date))))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeLanguageTable(w, r.TopLanguages); err != nil {
		return err
	}
	return writeWeekdayTable(w, r.WeekdayHistogram, r.BusiestDay)
}

func topRepository(top domain.TopRepository) string {
	if top.Placeholder {
		return top.Name
	}
	s := fmt.Sprintf("%s (score %.1f, %d stars, %d forks)", top.Name, top.Score, top.Stars, top.Forks)
	if top.Language != "" {
		s += " " + top.Language
	}
	return s
}

func writeLanguageTable(w io.Writer, langs []domain.LanguageStat) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Language", "Weight", "Repos", "Recent"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, l := range langs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			l.Name,
			strconv.FormatFloat(l.Weight, 'f', 1, 64),
			strconv.Itoa(l.RepoCount),
			strconv.Itoa(l.RecentCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeWeekdayTable(w io.Writer, hist [7]int, busiest time.Weekday) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Day", "Contributions", ""})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	peak := hist[busiest]
	var data [][]string
	for d := time.Sunday; d <= time.Saturday; d++ {
		data = append(data, []string{d.String(), strconv.Itoa(hist[d]), bar(hist[d], peak, 20)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func bar(v, peak, width int) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	return strings.Repeat("█", max(1, v*width/peak))
}

// WeeklyTotals sums the velocity series in consecutive 7-day chunks.
func WeeklyTotals(points []domain.VelocityPoint) []int {
	var totals []int
	for i, p := range points {
		if i%7 == 0 {
			totals = append(totals, 0)
		}
		totals[len(totals)-1] += p.Count
	}
	return totals
}

// Sparkline renders values as a row of block characters scaled to the maximum.
func Sparkline(values []int) string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	var b strings.Builder
	for _, v := range values {
		level := 0
		if peak > 0 && v > 0 {
			level = v * (len(sparkLevels) - 1) / peak
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
