package schedulers

import (
	"fmt"

	"edge-stats/internal/shared/svcerrors"
)

const (
	codeInvalidSchedule = "SCH_1000"
)

// errInvalidSchedule returns an error when the cron expression cannot be parsed.
func errInvalidSchedule(spec string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidSchedule, fmt.Sprintf("invalid cron schedule %q", spec), cause)
}
