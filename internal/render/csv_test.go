package render

import (
	"strings"
	"testing"

	"github.com/gitchart/gitchart/internal/binning"
)

func TestFormatBucketAuthors(t *testing.T) {
	tests := []struct {
		name     string
		byAuthor map[string]int
		expected string
	}{
		{name: "Empty", byAuthor: nil, expected: ""},
		{name: "Single", byAuthor: map[string]int{"alice": 2}, expected: "alice=2"},
		{name: "SortedByName", byAuthor: map[string]int{"carol": 1, "alice": 2, "bob": 3}, expected: "alice=2|bob=3|carol=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBucketAuthors(binning.Bucket{ByAuthor: tt.byAuthor})
			if got != tt.expected {
				t.Errorf("formatBucketAuthors() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCSVRenderer(t *testing.T) {
	series := newTestSeries(t)
	path := t.TempDir() + "/series.csv"

	renderer := &CSVRenderer{}
	if err := renderer.Render(series, Options{OutputPath: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := readFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 5 {
		t.Fatalf("line count = %d, expected header + 4 buckets:\n%s", len(lines), data)
	}
	if lines[0] != "Start,StartUnix,Total,Authors" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "alice=1|bob=1") {
		t.Errorf("first row missing author breakdown: %q", lines[1])
	}
	if !strings.Contains(lines[3], ",0,") {
		t.Errorf("synthesized row should hold zero commits: %q", lines[3])
	}
}
