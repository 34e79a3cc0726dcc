package models

import "time"

// Report is the ordered sequence of bucket records produced by one run,
// oldest bucket first.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Window      TimeRange
	Buckets     []*BucketRecord
}
