package leaderboard

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

// MaxEntries is how many entries the leaderboard shows.
const MaxEntries = 99

const (
	linkBase        = "https://www.nytimes.com/crosswords/game/mini"
	printDateLayout = "2006-1-2"
	longDateLayout  = "January 02, 2006"
)

// Entry is one ranked leaderboard line.
type Entry struct {
	Rank           int
	Date           time.Time
	SolvingSeconds int
}

// FormattedDate renders the date as "March 15, 2023".
func (e Entry) FormattedDate() string {
	return e.Date.Format(longDateLayout)
}

// Link returns the puzzle URL for the entry's date.
func (e Entry) Link() string {
	return PuzzleLink(e.Date)
}

// PuzzleLink builds the mini crossword URL for a date.
func PuzzleLink(date time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%02d", linkBase, date.Year(), int(date.Month()), date.Day())
}

// Sort orders rows by ascending solving time, keeping input order for ties.
func Sort(rows []model.PuzzleRow) []model.PuzzleRow {
	sorted := make([]model.PuzzleRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SolvingSeconds < sorted[j].SolvingSeconds
	})
	return sorted
}

// Rank sorts rows and returns up to limit entries. Rows whose print date
// cannot be parsed are reported to warn and skipped without taking a rank.
func Rank(rows []model.PuzzleRow, limit int, warn io.Writer) []Entry {
	sorted := Sort(rows)
	entries := make([]Entry, 0, min(limit, len(sorted)))
	for _, row := range sorted {
		if len(entries) >= limit {
			break
		}
		date, err := time.Parse(printDateLayout, row.PrintDate)
		if err != nil {
			printf(warn, "Warning: Invalid print_date value '%s'. Skipping row.\n", row.PrintDate)
			continue
		}
		entries = append(entries, Entry{
			Rank:           len(entries) + 1,
			Date:           date,
			SolvingSeconds: row.SolvingSeconds,
		})
	}
	return entries
}
