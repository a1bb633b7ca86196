package binning

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/gitchart/gitchart/internal/git"
)

// --- Generators ---

func genRecords() *rapid.Generator[[]git.CommitRecord] {
	authors := []string{"alice", "bob", "carol", "dave"}

	return rapid.Custom(func(t *rapid.T) []git.CommitRecord {
		count := rapid.IntRange(1, 200).Draw(t, "count")
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		records := make([]git.CommitRecord, count)
		for i := 0; i < count; i++ {
			offset := rapid.Int64Range(0, 5*365*24*3600).Draw(t, fmt.Sprintf("offset%d", i))
			author := rapid.SampledFrom(authors).Draw(t, fmt.Sprintf("author%d", i))
			records[i] = git.CommitRecord{When: base.Add(time.Duration(offset) * time.Second), Author: author}
		}
		return records
	})
}

func genPolicy() *rapid.Generator[*BucketPolicy] {
	return rapid.Custom(func(t *rapid.T) *BucketPolicy {
		switch rapid.IntRange(0, 6).Draw(t, "kind") {
		case 0:
			return nil // auto-select
		case 1:
			return policyPtr(CalendarPolicy(Hourly))
		case 2:
			return policyPtr(CalendarPolicy(Daily))
		case 3:
			return policyPtr(CalendarPolicy(Weekly))
		case 4:
			return policyPtr(CalendarPolicy(Monthly))
		case 5:
			return policyPtr(CalendarPolicy(Yearly))
		default:
			step := rapid.Int64Range(1, 90*24*3600).Draw(t, "step")
			return policyPtr(StepPolicy(step))
		}
	})
}

// --- Property tests ---

func TestRapidBin_BucketsStrictlyAscending(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords().Draw(t, "records")
		policy := genPolicy().Draw(t, "policy")

		series, err := Bin(records, policy, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 1; i < len(series.Buckets); i++ {
			prev, cur := series.Buckets[i-1].Start, series.Buckets[i].Start
			if !prev.Before(cur) {
				t.Fatalf("buckets not strictly ascending: %v then %v", prev, cur)
			}
		}
	})
}

func TestRapidBin_TotalMatchesAuthorSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords().Draw(t, "records")
		policy := genPolicy().Draw(t, "policy")

		series, err := Bin(records, policy, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		commits := 0
		for _, bucket := range series.Buckets {
			sum := 0
			for _, n := range bucket.ByAuthor {
				sum += n
			}
			if bucket.Total != sum {
				t.Fatalf("bucket %v: Total = %d but author sum = %d", bucket.Start, bucket.Total, sum)
			}
			commits += bucket.Total
		}

		if commits != len(records) {
			t.Fatalf("series holds %d commits, input had %d", commits, len(records))
		}
		if series.TotalCommits() != len(records) {
			t.Fatalf("AuthorTotals sum = %d, input had %d", series.TotalCommits(), len(records))
		}
	})
}

func TestRapidBin_GapsWithinTolerance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords().Draw(t, "records")
		policy := genPolicy().Draw(t, "policy")

		series, err := Bin(records, policy, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		width := series.Policy.Width()
		tolerance := series.Policy.Tolerance()

		for i := 1; i < len(series.Buckets); i++ {
			gap := series.Buckets[i].Start.Unix() - series.Buckets[i-1].Start.Unix()
			if gap-width > tolerance {
				t.Fatalf("gap of %ds exceeds width %ds + tolerance %ds", gap, width, tolerance)
			}
		}
	})
}

func TestRapidBin_MaxIsMaximum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords().Draw(t, "records")
		policy := genPolicy().Draw(t, "policy")

		series, err := Bin(records, policy, time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		max := 0
		for _, bucket := range series.Buckets {
			if bucket.Total > max {
				max = bucket.Total
			}
		}
		if series.Max != max {
			t.Fatalf("Max = %d, actual maximum is %d", series.Max, max)
		}
		if series.Max < 1 {
			t.Fatalf("Max = %d for non-empty input", series.Max)
		}
	})
}

func TestRapidFillGaps_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.Int64Range(1, 10000).Draw(t, "width")
		tolerance := rapid.Int64Range(0, width/2).Draw(t, "tolerance")

		count := rapid.IntRange(1, 50).Draw(t, "count")
		seen := map[int64]bool{}
		keys := make([]int64, 0, count)
		cursor := int64(0)
		for i := 0; i < count; i++ {
			cursor += rapid.Int64Range(1, 20*width).Draw(t, fmt.Sprintf("gap%d", i))
			if !seen[cursor] {
				seen[cursor] = true
				keys = append(keys, cursor)
			}
		}

		once := fillGaps(keys, width, tolerance)
		twice := fillGaps(once, width, tolerance)

		if len(once) != len(twice) {
			t.Fatalf("fillGaps not idempotent: %d keys then %d", len(once), len(twice))
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Fatalf("fillGaps not idempotent at index %d", i)
			}
		}
	})
}
