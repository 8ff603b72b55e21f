package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/xwstats/internal/model"
)

func TestReadRoundTripsWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	in := model.PuzzleRecord{
		Date:           time.Date(2023, 3, 15, 0, 0, 0, 0, time.Local),
		Day:            "Wed",
		ElapsedSeconds: 45,
		Solved:         true,
		StreakEligible: true,
	}
	if err := w.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}

	recs, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0]
	if !got.Date.Equal(in.Date) || got.Day != "Wed" || got.ElapsedSeconds != 45 || !got.Solved || got.Checked || got.Revealed || !got.StreakEligible {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestReadRejectsMissingColumn(t *testing.T) {
	if _, err := Read(strings.NewReader("date,day\n2023-03-15,Wed\n")); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestReadReportsLine(t *testing.T) {
	body := strings.Join(Header, ",") + "\n" +
		"2023-03-15,Wed,45,1,0,0,1\n" +
		"2023-03-16,Thu,x,1,0,0,1\n"
	_, err := Read(strings.NewReader(body))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line 3 error, got %v", err)
	}
}
