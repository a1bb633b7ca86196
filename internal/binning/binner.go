package binning

import (
	"errors"
	"sort"
	"time"

	"github.com/gitchart/gitchart/internal/git"
)

// ErrNoCommits is returned when the input sequence is empty. It is the
// tool's only hard validation failure and aborts before any rendering.
var ErrNoCommits = errors.New("no commits to bin")

// Bucket is one interval of the series: its start, the number of commits
// that fell into it, and the per-author breakdown.
// Invariant: Total == sum of ByAuthor values.
type Bucket struct {
	Start    time.Time
	Total    int
	ByAuthor map[string]int
}

// AuthorTotal pairs an author with their series-wide commit count.
type AuthorTotal struct {
	Author string
	Total  int
}

// TimeSeries is the binner's output: buckets sorted ascending by start with
// no gaps larger than one bucket width, plus series-wide metadata.
type TimeSeries struct {
	Buckets      []Bucket
	Policy       BucketPolicy
	Max          int            // Highest Total across all buckets
	AuthorTotals map[string]int // Series-wide commit count per author

	authorOrder []string // First-encounter order, for deterministic ranking
}

// RankedAuthors returns authors ordered descending by series-wide total.
// Ties keep first-encounter order, so the ranking is deterministic.
func (s *TimeSeries) RankedAuthors() []AuthorTotal {
	ranked := make([]AuthorTotal, 0, len(s.authorOrder))
	for _, author := range s.authorOrder {
		ranked = append(ranked, AuthorTotal{Author: author, Total: s.AuthorTotals[author]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// Span returns the start of the first and last buckets.
func (s *TimeSeries) Span() (time.Time, time.Time) {
	if len(s.Buckets) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.Buckets[0].Start, s.Buckets[len(s.Buckets)-1].Start
}

// TotalCommits returns the number of commits across the whole series.
func (s *TimeSeries) TotalCommits() int {
	total := 0
	for _, t := range s.AuthorTotals {
		total += t
	}
	return total
}

// Bin aggregates commit records into a gap-free time series.
//
// Records are sorted defensively (stable, ascending by timestamp) rather
// than trusting the source. When policy is nil a granularity is selected
// from the span between the first and last record. The location is used for
// calendar truncation and defaults to time.Local; fixed-step policies ignore
// it for bucketing and only use it to render bucket starts.
func Bin(records []git.CommitRecord, policy *BucketPolicy, loc *time.Location) (*TimeSeries, error) {
	if len(records) == 0 {
		return nil, ErrNoCommits
	}
	if loc == nil {
		loc = time.Local
	}

	sorted := make([]git.CommitRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When.Before(sorted[j].When)
	})

	var p BucketPolicy
	if policy != nil {
		p = *policy
	} else {
		p = AutoSelect(sorted[0].When, sorted[len(sorted)-1].When)
	}

	series := &TimeSeries{
		Policy:       p,
		AuthorTotals: make(map[string]int),
	}

	// Aggregate into buckets keyed by unix start second, created lazily.
	byKey := make(map[int64]*Bucket)
	for _, rec := range sorted {
		start := truncate(rec.When, p, loc)
		key := start.Unix()

		bucket, ok := byKey[key]
		if !ok {
			bucket = &Bucket{Start: start, ByAuthor: make(map[string]int)}
			byKey[key] = bucket
		}

		author := rec.DisplayAuthor()
		bucket.Total++
		bucket.ByAuthor[author]++

		if _, seen := series.AuthorTotals[author]; !seen {
			series.authorOrder = append(series.authorOrder, author)
		}
		series.AuthorTotals[author]++
	}

	keys := make([]int64, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	filled := fillGaps(keys, p.Width(), p.Tolerance())

	series.Buckets = make([]Bucket, 0, len(filled))
	for _, key := range filled {
		if bucket, ok := byKey[key]; ok {
			series.Buckets = append(series.Buckets, *bucket)
		} else {
			series.Buckets = append(series.Buckets, Bucket{
				Start:    time.Unix(key, 0).In(loc),
				ByAuthor: make(map[string]int),
			})
		}
	}

	for _, bucket := range series.Buckets {
		if bucket.Total > series.Max {
			series.Max = bucket.Total
		}
	}

	return series, nil
}

// truncate maps a timestamp to the start of its bucket.
func truncate(t time.Time, p BucketPolicy, loc *time.Location) time.Time {
	// Fixed steps are epoch-aligned arithmetic, deliberately not
	// calendar or DST aware.
	if p.IsFixed() {
		sec := t.Unix()
		rem := sec % p.Step
		if rem < 0 {
			rem += p.Step
		}
		return time.Unix(sec-rem, 0).In(loc)
	}

	t = t.In(loc)
	year, month, day := t.Date()

	switch p.Granularity {
	case Hourly:
		return time.Date(year, month, day, t.Hour(), 0, 0, 0, loc)
	case Weekly:
		// Back to the most recent Sunday at local midnight. Sunday = 0.
		midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return midnight.AddDate(0, 0, -int(midnight.Weekday()))
	case Monthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Yearly:
		return time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	default: // Daily
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}
}

// fillGaps synthesizes missing bucket keys between consecutive existing
// keys, stepping by width until within tolerance of the next key. Keys must
// be sorted ascending and unique; the result is too.
func fillGaps(keys []int64, width, tolerance int64) []int64 {
	if len(keys) < 2 {
		return keys
	}

	filled := make([]int64, 0, len(keys))
	for i, key := range keys {
		filled = append(filled, key)
		if i == len(keys)-1 {
			break
		}

		next := keys[i+1]
		for candidate := key + width; next-candidate > tolerance; candidate += width {
			filled = append(filled, candidate)
		}
	}
	return filled
}
