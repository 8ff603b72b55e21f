// Package stats summarizes fetched puzzle records.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DefaultTrendWindow is the moving-average window for the elapsed-time trend.
const DefaultTrendWindow = 7

var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WeekdaySummary aggregates records that fall on one weekday.
type WeekdaySummary struct {
	Day            string
	Puzzles        int
	Solved         int
	StreakEligible int
	TotalSeconds   int64
	BestSeconds    int64
}

// AvgSeconds returns the mean solving time over solved puzzles.
func (w WeekdaySummary) AvgSeconds() float64 {
	if w.Solved == 0 {
		return 0
	}
	return float64(w.TotalSeconds) / float64(w.Solved)
}

// Summary holds the totals for a set of records.
type Summary struct {
	Days           int
	Solved         int
	StreakEligible int
	CurrentStreak  int
	LongestStreak  int
	Weekdays       []WeekdaySummary
	// Elapsed holds solving times of solved puzzles in date order.
	Elapsed []float64
}

// Summarize aggregates records. Input order does not matter.
func Summarize(recs []model.PuzzleRecord) Summary {
	sorted := make([]model.PuzzleRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	byDay := make(map[time.Weekday]*WeekdaySummary, len(weekdayOrder))
	for _, wd := range weekdayOrder {
		byDay[wd] = &WeekdaySummary{Day: wd.String()[:3]}
	}

	s := Summary{Days: len(sorted)}
	run := 0
	var prev time.Time
	for i, rec := range sorted {
		wd := byDay[rec.Date.Weekday()]
		wd.Puzzles++
		if rec.Solved {
			s.Solved++
			wd.Solved++
			wd.TotalSeconds += rec.ElapsedSeconds
			if wd.BestSeconds == 0 || rec.ElapsedSeconds < wd.BestSeconds {
				wd.BestSeconds = rec.ElapsedSeconds
			}
			s.Elapsed = append(s.Elapsed, float64(rec.ElapsedSeconds))
		}

		consecutive := i > 0 && sameDay(prev.AddDate(0, 0, 1), rec.Date)
		switch {
		case !rec.StreakEligible:
			run = 0
		case consecutive:
			run++
		default:
			run = 1
		}
		if rec.StreakEligible {
			s.StreakEligible++
			wd.StreakEligible++
		}
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
		prev = rec.Date
	}
	s.CurrentStreak = run

	for _, wd := range weekdayOrder {
		s.Weekdays = append(s.Weekdays, *byDay[wd])
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatSeconds renders a duration in seconds as m:ss or h:mm:ss.
func FormatSeconds(seconds float64) string {
	total := int64(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// RenderSummary prints totals, the weekday table and the trend line.
func RenderSummary(w io.Writer, s Summary, window int) error {
	if s.Days == 0 {
		_, err := fmt.Fprintln(w, "No puzzles found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Days: %d", s.Days),
		fmt.Sprintf("Solved: %d", s.Solved),
		fmt.Sprintf("Streak eligible: %d", s.StreakEligible),
		fmt.Sprintf("Current streak: %d", s.CurrentStreak),
		fmt.Sprintf("Longest streak: %d", s.LongestStreak),
		"",
	}

	headers := []string{"Day", "Puzzles", "Solved", "Avg Time", "Best Time", "Streak Eligible"}
	rows := make([][]string, 0, len(s.Weekdays))
	for _, wd := range s.Weekdays {
		avg, best := "-", "-"
		if wd.Solved > 0 {
			avg = FormatSeconds(wd.AvgSeconds())
			best = FormatSeconds(float64(wd.BestSeconds))
		}
		rows = append(rows, []string{
			wd.Day,
			fmt.Sprintf("%d", wd.Puzzles),
			fmt.Sprintf("%d", wd.Solved),
			avg,
			best,
			fmt.Sprintf("%d", wd.StreakEligible),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	lines = append(lines, formatTable(headers, rows, rightAlign)...)

	if len(s.Elapsed) > 1 {
		lines = append(lines,
			"",
			fmt.Sprintf("Solve time trend (%d-puzzle average)", window),
			"["+Sparkline(MovingAverage(s.Elapsed, window))+"]",
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
