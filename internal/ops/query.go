package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/logscout/logscout/internal/platform"
)

// QueryRequest is one Logs Insights query submission. Exactly one of
// LogGroupNames or LogGroupIdentifiers must be set; identifiers are
// required when querying a linked source account through a monitoring
// account.
type QueryRequest struct {
	LogGroupNames       []string
	LogGroupIdentifiers []string
	QueryString         string
	StartTime           string // ISO-8601 with explicit offset
	EndTime             string // ISO-8601 with explicit offset
	Limit               int32
}

// Validate checks the request shape before any remote call is made.
func (r *QueryRequest) Validate() error {
	if (len(r.LogGroupNames) > 0) == (len(r.LogGroupIdentifiers) > 0) {
		return platform.NewQueryError(platform.ErrInvalidParameter,
			"Exactly one of log_group_names or log_group_identifiers must be provided",
			"Pass log group names, or ARNs via log_group_identifiers, but not both")
	}
	if _, err := parseISOTime(r.StartTime); err != nil {
		return platform.NewQueryError(platform.ErrInvalidParameter,
			fmt.Sprintf("invalid start_time %q: %v", r.StartTime, err),
			"Use ISO-8601 with an explicit offset, e.g. 2025-04-19T20:00:00+00:00")
	}
	if _, err := parseISOTime(r.EndTime); err != nil {
		return platform.NewQueryError(platform.ErrInvalidParameter,
			fmt.Sprintf("invalid end_time %q: %v", r.EndTime, err),
			"Use ISO-8601 with an explicit offset, e.g. 2025-04-19T21:00:00+00:00")
	}
	return nil
}

func (r *QueryRequest) startParams() platform.StartQueryParams {
	start, _ := parseISOTime(r.StartTime)
	end, _ := parseISOTime(r.EndTime)
	return platform.StartQueryParams{
		LogGroupNames:       r.LogGroupNames,
		LogGroupIdentifiers: r.LogGroupIdentifiers,
		QueryString:         r.QueryString,
		StartTime:           start.Unix(),
		EndTime:             end.Unix(),
		Limit:               r.Limit,
	}
}

// Submit validates the request and starts the query, returning its
// remote query ID. The request is not retained: the ID is the only
// handle to the running query.
func Submit(ctx context.Context, client platform.LogsAPI, req QueryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return client.StartQuery(ctx, req.startParams())
}

// ExecuteQuery submits a query and waits for its outcome within maxWait.
func ExecuteQuery(ctx context.Context, client platform.LogsAPI, req QueryRequest, maxWait time.Duration) (*platform.QueryOutcome, error) {
	queryID, err := Submit(ctx, client, req)
	if err != nil {
		return nil, err
	}
	return Await(ctx, client, queryID, maxWait)
}

// GetResults re-polls a previously started query by its ID. A zero
// maxWait degenerates to a single fetch of the current status.
func GetResults(ctx context.Context, client platform.LogsAPI, queryID string, maxWait time.Duration) (*platform.QueryOutcome, error) {
	if queryID == "" {
		return nil, platform.NewQueryError(platform.ErrInvalidParameter,
			"Query ID is required",
			"Use the queryId returned by execute_log_insights_query")
	}
	return Await(ctx, client, queryID, maxWait)
}

func parseISOTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
