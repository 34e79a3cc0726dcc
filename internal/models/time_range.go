package models

import (
	"fmt"
	"time"
)

// queryTimeLayout is the second-precision UTC layout the metrics source accepts.
const queryTimeLayout = "2006-01-02T15:04:05Z"

// TimeRange is the half-open interval [Since, Until), truncated to whole seconds.
type TimeRange struct {
	Since time.Time
	Until time.Time
}

// NewTimeRange builds a UTC TimeRange truncated to whole seconds.
// Returns an error if since is not strictly before until.
func NewTimeRange(since, until time.Time) (TimeRange, error) {
	r := TimeRange{
		Since: since.UTC().Truncate(time.Second),
		Until: until.UTC().Truncate(time.Second),
	}
	if !r.Since.Before(r.Until) {
		return TimeRange{}, fmt.Errorf("invalid time range: since=%s must be before until=%s", r.Since.Format(queryTimeLayout), r.Until.Format(queryTimeLayout))
	}
	return r, nil
}

func (r TimeRange) Duration() time.Duration {
	return r.Until.Sub(r.Since)
}

// FormatSince returns Since as YYYY-MM-DDTHH:MM:SSZ.
func (r TimeRange) FormatSince() string {
	return r.Since.UTC().Format(queryTimeLayout)
}

// FormatUntil returns Until as YYYY-MM-DDTHH:MM:SSZ.
func (r TimeRange) FormatUntil() string {
	return r.Until.UTC().Format(queryTimeLayout)
}

// FormatWindowStart returns a compact, sortable key for the range start (e.g. "20251228T18Z").
func (r TimeRange) FormatWindowStart() string {
	return r.Since.UTC().Truncate(time.Hour).Format("20060102T15Z")
}

// BucketID identifies the hour-of-day the range starts at (e.g. "hour-18").
// Used as a low-cardinality label.
func (r TimeRange) BucketID() string {
	return fmt.Sprintf("hour-%02d", r.Since.UTC().Hour())
}

func (r TimeRange) String() string {
	return r.FormatSince() + "/" + r.FormatUntil()
}
