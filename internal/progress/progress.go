// Package progress reports per-day fetch progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	barpkg "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	defaultBarWidth = 40
	labelReserve    = 32
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Reporter renders progress either as a redrawn bar (terminal) or as one
// line per day (pipes and files).
type Reporter struct {
	out         io.Writer
	bar         barpkg.Model
	interactive bool

	total   int
	done    int
	skipped int
}

// New returns a Reporter for f, drawing a bar when f is a terminal.
func New(f *os.File) *Reporter {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return NewPlain(f)
	}
	width := defaultBarWidth
	if cols, _, err := term.GetSize(fd); err == nil && cols-labelReserve < width {
		width = cols - labelReserve
	}
	if width < 10 {
		width = 10
	}
	return newReporter(f, width, true)
}

// NewPlain returns a line-oriented Reporter.
func NewPlain(w io.Writer) *Reporter {
	return newReporter(w, defaultBarWidth, false)
}

// NewBar returns a bar Reporter regardless of the output type.
func NewBar(w io.Writer, width int) *Reporter {
	return newReporter(w, width, true)
}

func newReporter(w io.Writer, width int, interactive bool) *Reporter {
	bar := barpkg.New(barpkg.WithDefaultGradient(), barpkg.WithWidth(width))
	return &Reporter{out: w, bar: bar, interactive: interactive}
}

// Start resets counters for a run of total days.
func (r *Reporter) Start(total int) {
	r.total = total
	r.done = 0
	r.skipped = 0
	if r.interactive {
		r.redraw("")
	}
}

// Advance records one processed day.
func (r *Reporter) Advance(date time.Time, err error) {
	r.done++
	if err != nil {
		r.skipped++
	}
	day := date.Format("2006-01-02")
	if r.interactive {
		r.redraw(day)
		return
	}
	if err != nil {
		logf(r.out, "[%d/%d] %s skipped: %v\n", r.done, r.total, day, err)
		return
	}
	logf(r.out, "[%d/%d] %s\n", r.done, r.total, day)
}

// Finish terminates the bar line.
func (r *Reporter) Finish(int) {
	if r.interactive {
		logf(r.out, "\n")
	}
}

func (r *Reporter) percent() float64 {
	if r.total <= 0 {
		return 1
	}
	return float64(r.done) / float64(r.total)
}

func (r *Reporter) redraw(day string) {
	label := labelStyle.Render(fmt.Sprintf("%d/%d %s", r.done, r.total, day))
	line := "\r" + r.bar.ViewAs(r.percent()) + " " + label
	if r.skipped > 0 {
		line += " " + skippedStyle.Render(fmt.Sprintf("(%d skipped)", r.skipped))
	}
	logf(r.out, "%s", line)
}

func logf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort progress output.
		_ = err
	}
}
