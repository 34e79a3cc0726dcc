package aggregators

import (
	"fmt"

	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/sources"
)

const (
	codeInternalQueryPanicked = "AGG_9000"
)

// errQueryPanicked returns an error when a source query panics inside a bucket.
func errQueryPanicked(kind sources.QueryKind, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalQueryPanicked, fmt.Errorf("%sQueryPanicked: %w", kind, cause))
}
