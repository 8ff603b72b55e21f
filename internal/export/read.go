package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

// Read parses a table produced by Writer. Columns are matched by header
// name, so extra columns are ignored.
func Read(r io.Reader) ([]model.PuzzleRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, col := range Header {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var recs []model.PuzzleRecord
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRecord(record []string, idx map[string]int) (model.PuzzleRecord, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}
	date, err := time.ParseInLocation(model.DateLayout, get("date"), time.Local)
	if err != nil {
		return model.PuzzleRecord{}, fmt.Errorf("invalid date: %w", err)
	}
	elapsed, err := strconv.ParseInt(get("elapsed_seconds"), 10, 64)
	if err != nil {
		return model.PuzzleRecord{}, fmt.Errorf("invalid elapsed_seconds: %w", err)
	}
	rec := model.PuzzleRecord{
		Date:           date,
		Day:            get("day"),
		ElapsedSeconds: elapsed,
	}
	flags := []struct {
		col string
		dst *bool
	}{
		{"solved", &rec.Solved},
		{"checked", &rec.Checked},
		{"revealed", &rec.Revealed},
		{"streak_eligible", &rec.StreakEligible},
	}
	for _, f := range flags {
		v, err := parseFlag(get(f.col))
		if err != nil {
			return model.PuzzleRecord{}, fmt.Errorf("invalid %s: %w", f.col, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func parseFlag(v string) (bool, error) {
	switch v {
	case "1":
		return true, nil
	case "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("expected 0 or 1, got %q", v)
	}
}
