package http

import (
	"edge-stats/internal/shared/svcerrors"
)

const (
	codeReportNotFound = "HTTP_1000"
)

// errReportNotFound returns an error when no report has been written yet.
func errReportNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, "no report has been written yet", cause)
}
