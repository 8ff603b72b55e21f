// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used on the wire and in CSV files.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns every calendar day from Start to End inclusive, ascending.
func (r DateRange) Days() []time.Time {
	start := truncateDay(r.Start)
	end := truncateDay(r.End)
	if start.After(end) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the range.
func (r DateRange) Len() int {
	return len(r.Days())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PuzzleRecord is one fetched day of solve statistics.
type PuzzleRecord struct {
	Date           time.Time
	Day            string
	ElapsedSeconds int64
	Solved         bool
	Checked        bool
	Revealed       bool
	StreakEligible bool
}

// PuzzleRow is one leaderboard candidate read from a CSV file.
type PuzzleRow struct {
	PrintDate      string
	SolvingSeconds int
}

// FetchConfig defines a single fetch run.
type FetchConfig struct {
	Username  string `validate:"required_without=Cookie"`
	Password  string `validate:"required_without=Cookie"`
	Cookie    string
	Range     DateRange
	OutputCSV string `validate:"required"`
	Strict    bool
	APIRoot   string `validate:"required,url"`
	LoginURL  string `validate:"required,url"`
}

// Validate checks the struct tags on the config.
func (c *FetchConfig) Validate() error {
	v := validator.New()
	return v.Struct(c)
}
