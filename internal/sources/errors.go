package sources

import (
	"fmt"
	"strings"

	"edge-stats/internal/shared/svcerrors"
)

const (
	codeUnknownQueryKind = "SRC_1000"

	codeApplicationErrors = "SRC_2000"
	codeMissingData       = "SRC_2001"

	codeTransportFailure = "SRC_9000"
)

func errUnknownQueryKind(kind QueryKind) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnknownQueryKind, fmt.Sprintf("unknown query kind: %q", kind), nil)
}

// errApplicationErrors is returned when the source answered 200 with an error list.
func errApplicationErrors(kind QueryKind, errs []graphQLError) *svcerrors.ServiceError {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return svcerrors.NewLogicalEmptyError(codeApplicationErrors,
		fmt.Sprintf("%s query returned errors", kind),
		fmt.Errorf("applicationErrors: %s", strings.Join(messages, "; ")))
}

// errMissingData is returned when the response lacks the expected payload.
func errMissingData(kind QueryKind, what string) *svcerrors.ServiceError {
	return svcerrors.NewLogicalEmptyError(codeMissingData, fmt.Sprintf("%s query returned no %s", kind, what), nil)
}

// errTransportFailure is returned once the retry budget is exhausted.
func errTransportFailure(kind QueryKind, attempts int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewTransportFailureError(codeTransportFailure,
		fmt.Sprintf("%s query failed after %d attempts", kind, attempts),
		fmt.Errorf("transportFailure: %w", cause))
}
