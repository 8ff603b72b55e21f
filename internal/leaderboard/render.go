package leaderboard

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	noPuzzlesMessage = "No puzzles to display."
	titleLine        = "Top 100 fastest mini solves:"
)

// Render prints the ranked entries.
func Render(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, noPuzzlesMessage)
		return err
	}
	if _, err := fmt.Fprintln(w, titleLine); err != nil {
		return err
	}
	for _, e := range entries {
		indent := strings.Repeat(" ", len(strconv.Itoa(e.Rank))+2)
		if _, err := fmt.Fprintf(w, "%d. Date: %s\n", e.Rank, e.FormattedDate()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%sSolving Time: %d seconds\n", indent, e.SolvingSeconds); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%sLink: %s\n", indent, e.Link()); err != nil {
			return err
		}
	}
	return nil
}

// Run loads path and prints the leaderboard to out. File access problems are
// reported on out and are not returned as errors.
func Run(path string, out io.Writer) error {
	rows, err := Load(path, out)
	if err != nil {
		ReportLoadError(out, path, err)
		return nil
	}
	return Render(out, Rank(rows, MaxEntries, out))
}

// ReportLoadError prints the console message for an error returned by Load.
func ReportLoadError(out io.Writer, path string, err error) {
	switch {
	case errors.Is(err, ErrFileNotFound):
		printf(out, "Error: File not found at %s\n", path)
	case errors.Is(err, ErrNoHeader):
		printf(out, "Error: The CSV file is empty or has no headers.\n")
	default:
		printf(out, "An error occurred while reading the CSV file: %v\n", err)
	}
}
