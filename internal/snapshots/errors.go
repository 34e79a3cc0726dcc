package snapshots

import (
	"fmt"

	"edge-stats/internal/shared/svcerrors"
)

// SnapshotService errors
const (
	codeSnapshotInProgress      = "SNP_1000"
	codeSnapshotAlreadyArchived = "SNP_1001"

	codeInternalReportStoreFailed = "SNP_9000"
)

// errSnapshotInProgress returns an error when another snapshot is still running.
func errSnapshotInProgress() *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeSnapshotInProgress, "snapshot run already in progress", nil)
}

// errSnapshotAlreadyArchived returns an error when the run's archive copy already exists.
func errSnapshotAlreadyArchived(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeSnapshotAlreadyArchived, "snapshot already archived", cause)
}

// errInternalReportStoreFailed returns an error when the report could not be written.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
