// Package fetch pulls per-day solve statistics and drives a date range.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
	"github.com/verte-zerg/xwstats/internal/nyt"
)

// API is the subset of the games client used by the fetcher.
type API interface {
	PuzzleForDate(ctx context.Context, cookie string, date time.Time) (nyt.Puzzle, error)
	SolveForPuzzle(ctx context.Context, cookie string, puzzleID int64) (nyt.Solve, error)
}

// Fetcher resolves one calendar day into a PuzzleRecord.
type Fetcher struct {
	api   API
	token string
}

// NewFetcher returns a Fetcher authenticated with token.
func NewFetcher(api API, token string) *Fetcher {
	return &Fetcher{api: api, token: token}
}

// FetchDay requests the puzzle for date and then its solve metadata.
func (f *Fetcher) FetchDay(ctx context.Context, date time.Time) (model.PuzzleRecord, error) {
	puzzle, err := f.api.PuzzleForDate(ctx, f.token, date)
	if err != nil {
		return model.PuzzleRecord{}, fmt.Errorf("puzzle %s: %w", date.Format(model.DateLayout), err)
	}
	solve, err := f.api.SolveForPuzzle(ctx, f.token, puzzle.ID)
	if err != nil {
		return model.PuzzleRecord{}, fmt.Errorf("solve %s: %w", date.Format(model.DateLayout), err)
	}
	return BuildRecord(date, solve), nil
}

// BuildRecord derives the output fields for a day from its solve metadata.
func BuildRecord(date time.Time, solve nyt.Solve) model.PuzzleRecord {
	return model.PuzzleRecord{
		Date:           date,
		Day:            date.Format("Mon"),
		ElapsedSeconds: solve.TimeElapsed,
		Solved:         solve.Solved,
		Checked:        solve.Checked,
		Revealed:       solve.Revealed,
		StreakEligible: StreakEligible(date, solve),
	}
}

// StreakEligible reports whether an unaided solve landed before the streak
// cutoff: midnight Pacific of the following day, taken as puzzle date plus
// one day and eight hours with no DST adjustment.
func StreakEligible(date time.Time, solve nyt.Solve) bool {
	if !solve.Solved || solve.Checked || solve.Revealed {
		return false
	}
	deadline := date.AddDate(0, 0, 1).Add(8 * time.Hour)
	return !solve.FirstSolved.After(deadline)
}
