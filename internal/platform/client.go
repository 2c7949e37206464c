package platform

import "context"

// LogsAPI is the interface for CloudWatch Logs operations used by logscout.
// Mocked in tests, real implementation wraps the aws-sdk-go-v2 client.
type LogsAPI interface {
	// Catalog
	DescribeLogGroups(ctx context.Context, params ListLogGroupsParams) ([]LogGroup, error)
	DescribeQueryDefinitions(ctx context.Context) ([]SavedQuery, error)

	// Logs Insights query lifecycle (async -- queryID is the handle)
	StartQuery(ctx context.Context, params StartQueryParams) (string, error)
	GetQueryResults(ctx context.Context, queryID string) (*QueryOutcome, error)
	// StopQuery returns the remote success flag: true only when the query
	// was running and has now been stopped.
	StopQuery(ctx context.Context, queryID string) (bool, error)

	// Anomaly detection (read-only)
	ListAnomalyDetectors(ctx context.Context, logGroupARN string) ([]AnomalyDetector, error)
	ListAnomalies(ctx context.Context, detectorARN string) ([]Anomaly, error)
}
