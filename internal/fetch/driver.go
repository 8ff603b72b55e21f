package fetch

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

// DayFetcher fetches the record for a single day.
type DayFetcher interface {
	FetchDay(ctx context.Context, date time.Time) (model.PuzzleRecord, error)
}

// RecordWriter persists fetched records.
type RecordWriter interface {
	Write(rec model.PuzzleRecord) error
}

// Reporter observes driver progress. Finish is only called when the run
// completes.
type Reporter interface {
	Start(total int)
	Advance(date time.Time, err error)
	Finish(written int)
}

// Driver walks a date range one day at a time.
type Driver struct {
	Fetcher  DayFetcher
	Writer   RecordWriter
	Progress Reporter
	Strict   bool
	Logger   *slog.Logger
}

// Run fetches each day of r in ascending order and returns the number of rows
// written. In strict mode the first fetch failure aborts the run; otherwise
// the day is skipped. Write failures and context cancellation always abort.
func (d *Driver) Run(ctx context.Context, r model.DateRange) (int, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	progress := d.Progress
	if progress == nil {
		progress = nopReporter{}
	}

	days := r.Days()
	progress.Start(len(days))
	count := 0
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		rec, err := d.Fetcher.FetchDay(ctx, day)
		if err != nil {
			if d.Strict || ctx.Err() != nil {
				return count, err
			}
			logger.Debug("skipping day", "date", day.Format(model.DateLayout), "error", err)
			progress.Advance(day, err)
			continue
		}
		if err := d.Writer.Write(rec); err != nil {
			return count, err
		}
		count++
		progress.Advance(day, nil)
	}
	progress.Finish(count)
	return count, nil
}

type nopReporter struct{}

func (nopReporter) Start(int)                {}
func (nopReporter) Advance(time.Time, error) {}
func (nopReporter) Finish(int)               {}
