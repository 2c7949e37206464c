package ops

import (
	"context"
	"fmt"

	"github.com/logscout/logscout/internal/platform"
)

// CancelResult reports whether a query was actively running and is now
// stopped.
type CancelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CancelQuery stops a running Logs Insights query. A query that is not
// in a cancellable state — already finished, already cancelled, or
// unknown to the service — is not a failure: the caller's goal of not
// paying for it further is already met, so the result is success=false
// with an explanation.
func CancelQuery(ctx context.Context, client platform.LogsAPI, queryID string) (*CancelResult, error) {
	if queryID == "" {
		return nil, platform.NewQueryError(platform.ErrInvalidParameter,
			"Query ID is required",
			"Use the queryId returned by execute_log_insights_query")
	}

	success, err := client.StopQuery(ctx, queryID)
	if err != nil {
		if platform.IsQueryNotRunning(err) {
			return &CancelResult{
				Success: false,
				Message: fmt.Sprintf("Query %s is not running; it already finished, was cancelled, or is unknown", queryID),
			}, nil
		}
		return nil, platform.WrapQueryError(platform.ErrQueryExecution,
			fmt.Sprintf("stopping query %s failed: %v", queryID, err),
			"Check the query ID and AWS credentials", err)
	}

	if !success {
		return &CancelResult{
			Success: false,
			Message: fmt.Sprintf("Query %s was not running", queryID),
		}, nil
	}
	return &CancelResult{
		Success: true,
		Message: fmt.Sprintf("Query %s stopped", queryID),
	}, nil
}
