// Package leaderboard ranks puzzle solves by solving time.
package leaderboard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/xwstats/internal/model"
)

const (
	printDateColumn      = "print_date"
	solvingSecondsColumn = "solving_seconds"

	// MinSolvingSeconds drops solves too fast to be real.
	MinSolvingSeconds = 2
)

var (
	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrNoHeader is returned when the input has no header row.
	ErrNoHeader = errors.New("the CSV file is empty or has no headers")
)

// Load reads valid rows from the CSV at path. Progress and per-row warnings
// are written to out; malformed rows are skipped.
func Load(path string, out io.Writer) ([]model.PuzzleRow, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, err
	}
	dateIdx, secondsIdx := columnIndex(header, printDateColumn), columnIndex(header, solvingSecondsColumn)

	printf(out, "Successfully read data from %s.  Now processing...\n", path)

	var rows []model.PuzzleRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		raw := field(record, secondsIdx)
		if raw == "" {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			printf(out, "Warning: Invalid solving_seconds value '%s'. Skipping row.\n", raw)
			continue
		}
		if seconds < MinSolvingSeconds {
			continue
		}
		rows = append(rows, model.PuzzleRow{
			PrintDate:      field(record, dateIdx),
			SolvingSeconds: seconds,
		})
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func printf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort console output.
		_ = err
	}
}
