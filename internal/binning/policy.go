package binning

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidStep is returned for a step value that is neither a positive
// integer nor a recognized granularity name. It is detected before any
// commit source is invoked.
var ErrInvalidStep = errors.New("invalid step")

// Granularity is a named calendar bucket width.
type Granularity string

const (
	Hourly  Granularity = "hourly"
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Nominal seconds-equivalent widths for calendar granularities. Months and
// years use the 30/360-day approximations; gap filling compensates with a
// half-width tolerance.
const (
	secondsPerHour  = 3600
	secondsPerDay   = 24 * secondsPerHour
	secondsPerWeek  = 7 * secondsPerDay
	secondsPerMonth = 30 * secondsPerDay
	secondsPerYear  = 360 * secondsPerDay
)

// BucketPolicy determines how timestamps are truncated into buckets.
// Either a calendar granularity or a fixed step in seconds is set, never both.
type BucketPolicy struct {
	Granularity Granularity
	Step        int64 // Seconds; > 0 means fixed epoch-aligned buckets
}

// CalendarPolicy returns a policy for a named calendar granularity.
func CalendarPolicy(g Granularity) BucketPolicy {
	return BucketPolicy{Granularity: g}
}

// StepPolicy returns a fixed-width policy of the given number of seconds.
func StepPolicy(step int64) BucketPolicy {
	return BucketPolicy{Step: step}
}

// IsFixed reports whether the policy uses fixed epoch-aligned buckets
// rather than calendar truncation.
func (p BucketPolicy) IsFixed() bool {
	return p.Step > 0
}

// Width returns the nominal bucket width in seconds.
func (p BucketPolicy) Width() int64 {
	if p.IsFixed() {
		return p.Step
	}
	switch p.Granularity {
	case Hourly:
		return secondsPerHour
	case Daily:
		return secondsPerDay
	case Weekly:
		return secondsPerWeek
	case Monthly:
		return secondsPerMonth
	case Yearly:
		return secondsPerYear
	default:
		return secondsPerDay
	}
}

// Tolerance returns the slack allowed when gap filling. Calendar buckets
// have variable true length, so an approximate match within half a width is
// accepted. Fixed steps are exact arithmetic with no slack.
func (p BucketPolicy) Tolerance() int64 {
	if p.IsFixed() {
		return 0
	}
	return p.Width() / 2
}

// String returns the policy name for display and axis formatting.
func (p BucketPolicy) String() string {
	if p.IsFixed() {
		return fmt.Sprintf("step=%ds", p.Step)
	}
	return string(p.Granularity)
}

// LabelLayout returns the time layout used to label buckets of this policy.
func (p BucketPolicy) LabelLayout() string {
	if p.IsFixed() {
		return "2006-01-02 15:04:05"
	}
	switch p.Granularity {
	case Hourly:
		return "Jan 02 15:04"
	case Daily, Weekly:
		return time.DateOnly
	case Monthly:
		return "Jan 2006"
	case Yearly:
		return "2006"
	default:
		return time.DateOnly
	}
}

// ParsePolicy parses an explicit step flag value: either a granularity name
// or a positive integer number of seconds.
func ParsePolicy(s string) (BucketPolicy, error) {
	switch Granularity(s) {
	case Hourly, Daily, Weekly, Monthly, Yearly:
		return CalendarPolicy(Granularity(s)), nil
	}

	step, err := strconv.ParseInt(s, 10, 64)
	if err != nil || step <= 0 {
		return BucketPolicy{}, fmt.Errorf("%w: %q is neither a positive integer nor a granularity name", ErrInvalidStep, s)
	}
	return StepPolicy(step), nil
}

// Granularity auto-selection break-points. These mirror the calendar
// approximations above: a month is about 30 days, a year about 360.
const (
	monthlyThreshold = 360 * secondsPerDay
	weeklyThreshold  = 30 * secondsPerDay
	dailyThreshold   = secondsPerDay * 7 / 2
)

// AutoSelect picks a granularity from the span between the first and last
// commit. Yearly is never auto-selected; it is only available explicitly.
func AutoSelect(first, last time.Time) BucketPolicy {
	gap := last.Unix() - first.Unix()

	switch {
	case gap > monthlyThreshold:
		return CalendarPolicy(Monthly)
	case gap > weeklyThreshold:
		return CalendarPolicy(Weekly)
	case gap > dailyThreshold:
		return CalendarPolicy(Daily)
	default:
		return CalendarPolicy(Hourly)
	}
}
