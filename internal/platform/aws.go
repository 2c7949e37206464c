package platform

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// cwAPI is the slice of the cloudwatchlogs.Client surface logscout calls.
// Narrowed to an interface so Client can be unit-tested without AWS.
type cwAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeQueryDefinitions(ctx context.Context, params *cloudwatchlogs.DescribeQueryDefinitionsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeQueryDefinitionsOutput, error)
	StartQuery(ctx context.Context, params *cloudwatchlogs.StartQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error)
	GetQueryResults(ctx context.Context, params *cloudwatchlogs.GetQueryResultsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error)
	StopQuery(ctx context.Context, params *cloudwatchlogs.StopQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StopQueryOutput, error)
	ListLogAnomalyDetectors(ctx context.Context, params *cloudwatchlogs.ListLogAnomalyDetectorsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListLogAnomalyDetectorsOutput, error)
	ListAnomalies(ctx context.Context, params *cloudwatchlogs.ListAnomaliesInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListAnomaliesOutput, error)
}

// Client implements LogsAPI against the CloudWatch Logs service.
type Client struct {
	api cwAPI
}

var _ LogsAPI = (*Client)(nil)

// NewClient creates a LogsAPI implementation from a resolved AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{api: cloudwatchlogs.NewFromConfig(cfg)}
}

func newClientWithAPI(api cwAPI) *Client {
	return &Client{api: api}
}

// DescribeLogGroups lists log groups, following pagination until MaxItems
// (when set) or the last page.
func (c *Client) DescribeLogGroups(ctx context.Context, params ListLogGroupsParams) ([]LogGroup, error) {
	input := &cloudwatchlogs.DescribeLogGroupsInput{}
	if params.NamePrefix != "" {
		input.LogGroupNamePrefix = aws.String(params.NamePrefix)
	}
	if params.LogGroupClass != "" {
		input.LogGroupClass = types.LogGroupClass(params.LogGroupClass)
	}
	if len(params.AccountIdentifiers) > 0 {
		input.AccountIdentifiers = params.AccountIdentifiers
	}
	if params.IncludeLinkedAccounts {
		input.IncludeLinkedAccounts = aws.Bool(true)
	}

	var groups []LogGroup
	paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, WrapQueryError(ErrRemoteAPI,
				fmt.Sprintf("DescribeLogGroups failed: %v", err),
				"Check AWS credentials and region", err)
		}
		for _, lg := range page.LogGroups {
			groups = append(groups, mapLogGroup(lg))
			if params.MaxItems > 0 && int32(len(groups)) >= params.MaxItems {
				return groups, nil
			}
		}
	}
	return groups, nil
}

// DescribeQueryDefinitions lists saved Logs Insights queries. The API has
// no paginator, so the token loop is manual.
func (c *Client) DescribeQueryDefinitions(ctx context.Context) ([]SavedQuery, error) {
	var queries []SavedQuery
	var nextToken *string
	for {
		out, err := c.api.DescribeQueryDefinitions(ctx, &cloudwatchlogs.DescribeQueryDefinitionsInput{
			QueryLanguage: types.QueryLanguageCwli,
			NextToken:     nextToken,
		})
		if err != nil {
			return nil, WrapQueryError(ErrRemoteAPI,
				fmt.Sprintf("DescribeQueryDefinitions failed: %v", err),
				"Check AWS credentials and region", err)
		}
		for _, qd := range out.QueryDefinitions {
			queries = append(queries, mapSavedQuery(qd))
		}
		if out.NextToken == nil {
			return queries, nil
		}
		nextToken = out.NextToken
	}
}

// StartQuery submits a Logs Insights query and returns its query ID.
func (c *Client) StartQuery(ctx context.Context, params StartQueryParams) (string, error) {
	input := &cloudwatchlogs.StartQueryInput{
		QueryString: aws.String(params.QueryString),
		StartTime:   aws.Int64(params.StartTime),
		EndTime:     aws.Int64(params.EndTime),
	}
	if len(params.LogGroupNames) > 0 {
		input.LogGroupNames = params.LogGroupNames
	}
	if len(params.LogGroupIdentifiers) > 0 {
		input.LogGroupIdentifiers = params.LogGroupIdentifiers
	}
	if params.Limit > 0 {
		input.Limit = aws.Int32(params.Limit)
	}

	out, err := c.api.StartQuery(ctx, input)
	if err != nil {
		return "", WrapQueryError(ErrRemoteAPI,
			fmt.Sprintf("StartQuery failed: %v", err),
			"Check the query syntax and the log group scope", err)
	}
	queryID := aws.ToString(out.QueryId)
	if queryID == "" {
		return "", NewQueryError(ErrRemoteAPI,
			"StartQuery returned no query ID", "")
	}
	return queryID, nil
}

// GetQueryResults fetches the current status and rows for a query ID.
// Errors are returned unwrapped so the poll loop can classify them as
// transient or terminal.
func (c *Client) GetQueryResults(ctx context.Context, queryID string) (*QueryOutcome, error) {
	out, err := c.api.GetQueryResults(ctx, &cloudwatchlogs.GetQueryResultsInput{
		QueryId: aws.String(queryID),
	})
	if err != nil {
		return nil, err
	}
	return mapQueryResults(out, queryID), nil
}

// StopQuery asks the service to stop a running query. Errors are returned
// unwrapped so the cancel path can tell "not running" from a hard failure.
func (c *Client) StopQuery(ctx context.Context, queryID string) (bool, error) {
	out, err := c.api.StopQuery(ctx, &cloudwatchlogs.StopQueryInput{
		QueryId: aws.String(queryID),
	})
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

// ListAnomalyDetectors lists anomaly detectors filtered to one log group.
func (c *Client) ListAnomalyDetectors(ctx context.Context, logGroupARN string) ([]AnomalyDetector, error) {
	var detectors []AnomalyDetector
	paginator := cloudwatchlogs.NewListLogAnomalyDetectorsPaginator(c.api, &cloudwatchlogs.ListLogAnomalyDetectorsInput{
		FilterLogGroupArn: aws.String(logGroupARN),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, WrapQueryError(ErrRemoteAPI,
				fmt.Sprintf("ListLogAnomalyDetectors failed: %v", err),
				"Check the log group ARN", err)
		}
		for _, d := range page.AnomalyDetectors {
			detectors = append(detectors, mapAnomalyDetector(d))
		}
	}
	return detectors, nil
}

// ListAnomalies lists unsuppressed anomalies reported by one detector.
func (c *Client) ListAnomalies(ctx context.Context, detectorARN string) ([]Anomaly, error) {
	var anomalies []Anomaly
	paginator := cloudwatchlogs.NewListAnomaliesPaginator(c.api, &cloudwatchlogs.ListAnomaliesInput{
		AnomalyDetectorArn: aws.String(detectorARN),
		SuppressionState:   types.SuppressionStateUnsuppressed,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, WrapQueryError(ErrRemoteAPI,
				fmt.Sprintf("ListAnomalies failed: %v", err),
				"Check the anomaly detector ARN", err)
		}
		for _, a := range page.Anomalies {
			anomalies = append(anomalies, mapAnomaly(a))
		}
	}
	return anomalies, nil
}
