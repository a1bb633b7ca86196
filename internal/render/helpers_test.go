package render

import (
	"os"
	"testing"
	"time"

	"github.com/gitchart/gitchart/internal/binning"
	"github.com/gitchart/gitchart/internal/git"
)

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

// newTestSeries bins a small fixed-step series: four hourly buckets with
// totals 2, 1, 0 (synthesized), 1 and two authors.
func newTestSeries(t *testing.T) *binning.TimeSeries {
	t.Helper()

	policy := binning.StepPolicy(3600)
	records := []git.CommitRecord{
		{When: time.Unix(0, 0), Author: "alice"},
		{When: time.Unix(60, 0), Author: "bob"},
		{When: time.Unix(3700, 0), Author: "alice"},
		{When: time.Unix(10900, 0), Author: "alice"},
	}

	series, err := binning.Bin(records, &policy, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error building test series: %v", err)
	}
	return series
}
