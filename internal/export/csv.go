// Package export writes fetched puzzle records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/xwstats/internal/model"
)

// Header is the fixed column order of the output table.
var Header = []string{
	"date",
	"day",
	"elapsed_seconds",
	"solved",
	"checked",
	"revealed",
	"streak_eligible",
}

// Writer appends PuzzleRecords to a CSV stream. Each row is flushed as it is
// written so a partial run leaves a readable file.
type Writer struct {
	csv *csv.Writer
}

// NewWriter writes the header row and returns a Writer.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

// Write appends one record.
func (w *Writer) Write(rec model.PuzzleRecord) error {
	if err := w.csv.Write(recordFields(rec)); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func recordFields(rec model.PuzzleRecord) []string {
	return []string{
		rec.Date.Format(model.DateLayout),
		rec.Day,
		strconv.FormatInt(rec.ElapsedSeconds, 10),
		boolField(rec.Solved),
		boolField(rec.Checked),
		boolField(rec.Revealed),
		boolField(rec.StreakEligible),
	}
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
