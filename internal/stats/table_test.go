package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Day", "Solved", "Avg Time"}
	rows := [][]string{
		{"Mon", "4", "0:45"},
		{"Sat", "12", "1:02:03"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Day Solved Avg Time" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Mon      4     0:45" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Sat     12  1:02:03" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("日曜"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	lines := formatTable([]string{"Day", "N"}, [][]string{{"日曜", "1"}}, nil)
	if lines[0] != "Day  N" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
}
