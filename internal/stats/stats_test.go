package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

func rec(day int, solved, eligible bool, elapsed int64) model.PuzzleRecord {
	date := time.Date(2023, 3, day, 0, 0, 0, 0, time.UTC)
	return model.PuzzleRecord{
		Date:           date,
		Day:            date.Format("Mon"),
		ElapsedSeconds: elapsed,
		Solved:         solved,
		StreakEligible: eligible,
	}
}

func TestSummarizeStreaks(t *testing.T) {
	recs := []model.PuzzleRecord{
		rec(6, true, true, 40),
		rec(7, true, true, 50),
		rec(8, true, true, 30),
		rec(9, true, false, 90),
		rec(10, true, true, 20),
		rec(12, true, true, 25),
		rec(13, true, true, 35),
	}
	s := Summarize(recs)
	if s.Days != 7 || s.Solved != 7 || s.StreakEligible != 6 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", s.LongestStreak)
	}
	if s.CurrentStreak != 2 {
		t.Fatalf("expected current streak 2 after the gap on the 11th, got %d", s.CurrentStreak)
	}
}

func TestSummarizeWeekdays(t *testing.T) {
	// 2023-03-06 and 2023-03-13 are Mondays.
	recs := []model.PuzzleRecord{
		rec(13, true, true, 30),
		rec(6, true, true, 60),
		rec(7, false, false, 0),
	}
	s := Summarize(recs)
	if len(s.Weekdays) != 7 || s.Weekdays[0].Day != "Mon" || s.Weekdays[6].Day != "Sun" {
		t.Fatalf("unexpected weekday order: %+v", s.Weekdays)
	}
	mon := s.Weekdays[0]
	if mon.Puzzles != 2 || mon.Solved != 2 || mon.BestSeconds != 30 || mon.AvgSeconds() != 45 {
		t.Fatalf("unexpected monday summary: %+v", mon)
	}
	tue := s.Weekdays[1]
	if tue.Puzzles != 1 || tue.Solved != 0 || tue.AvgSeconds() != 0 {
		t.Fatalf("unexpected tuesday summary: %+v", tue)
	}
	if len(s.Elapsed) != 2 || s.Elapsed[0] != 60 || s.Elapsed[1] != 30 {
		t.Fatalf("expected elapsed in date order, got %v", s.Elapsed)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("expected min/max glyphs, got %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:    "0:00",
		45:   "0:45",
		61.4: "1:01",
		3723: "1:02:03",
	}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%v): expected %q, got %q", in, want, got)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	s := Summarize([]model.PuzzleRecord{rec(6, true, true, 40), rec(7, true, true, 50)})
	if err := RenderSummary(&buf, s, DefaultTrendWindow); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Days: 2", "Current streak: 2", "Day Puzzles Solved", "Mon", "0:40", "Solve time trend"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summarize(nil), DefaultTrendWindow); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No puzzles found.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
