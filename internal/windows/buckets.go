package windows

import (
	"time"

	"edge-stats/internal/models"
)

const (
	// DefaultBucketCount is the lookback window length in buckets.
	DefaultBucketCount = 24
	// BucketWidth is the span of one bucket.
	BucketWidth = time.Hour
)

// Buckets returns n contiguous hourly ranges, oldest first, ending at now
// truncated to the hour. The truncated instant is never inside a bucket.
func Buckets(now time.Time, n int) []models.TimeRange {
	end := now.UTC().Truncate(BucketWidth)

	ranges := make([]models.TimeRange, 0, n)
	for i := n; i >= 1; i-- {
		since := end.Add(-time.Duration(i) * BucketWidth)
		ranges = append(ranges, models.TimeRange{Since: since, Until: since.Add(BucketWidth)})
	}
	return ranges
}
