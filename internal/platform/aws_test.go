package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// fakeCWAPI stubs the SDK surface with canned pages.
type fakeCWAPI struct {
	logGroupPages    []*cloudwatchlogs.DescribeLogGroupsOutput
	queryDefPages    []*cloudwatchlogs.DescribeQueryDefinitionsOutput
	startQueryOutput *cloudwatchlogs.StartQueryOutput
	startQueryErr    error

	logGroupCalls int
	queryDefCalls int
}

func (f *fakeCWAPI) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	out := f.logGroupPages[f.logGroupCalls]
	f.logGroupCalls++
	return out, nil
}

func (f *fakeCWAPI) DescribeQueryDefinitions(ctx context.Context, params *cloudwatchlogs.DescribeQueryDefinitionsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeQueryDefinitionsOutput, error) {
	out := f.queryDefPages[f.queryDefCalls]
	f.queryDefCalls++
	return out, nil
}

func (f *fakeCWAPI) StartQuery(ctx context.Context, params *cloudwatchlogs.StartQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error) {
	return f.startQueryOutput, f.startQueryErr
}

func (f *fakeCWAPI) GetQueryResults(ctx context.Context, params *cloudwatchlogs.GetQueryResultsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error) {
	return &cloudwatchlogs.GetQueryResultsOutput{Status: types.QueryStatusRunning}, nil
}

func (f *fakeCWAPI) StopQuery(ctx context.Context, params *cloudwatchlogs.StopQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StopQueryOutput, error) {
	return &cloudwatchlogs.StopQueryOutput{Success: true}, nil
}

func (f *fakeCWAPI) ListLogAnomalyDetectors(ctx context.Context, params *cloudwatchlogs.ListLogAnomalyDetectorsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListLogAnomalyDetectorsOutput, error) {
	return &cloudwatchlogs.ListLogAnomalyDetectorsOutput{}, nil
}

func (f *fakeCWAPI) ListAnomalies(ctx context.Context, params *cloudwatchlogs.ListAnomaliesInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListAnomaliesOutput, error) {
	return &cloudwatchlogs.ListAnomaliesOutput{}, nil
}

func TestClientDescribeLogGroups_MaxItemsStopsPagination(t *testing.T) {
	t.Parallel()

	api := &fakeCWAPI{
		logGroupPages: []*cloudwatchlogs.DescribeLogGroupsOutput{
			{
				LogGroups: []types.LogGroup{
					{LogGroupName: aws.String("/a"), CreationTime: aws.Int64(0)},
					{LogGroupName: aws.String("/b"), CreationTime: aws.Int64(0)},
				},
				NextToken: aws.String("page-2"),
			},
			{
				LogGroups: []types.LogGroup{
					{LogGroupName: aws.String("/c"), CreationTime: aws.Int64(0)},
				},
			},
		},
	}
	client := newClientWithAPI(api)

	groups, err := client.DescribeLogGroups(context.Background(), ListLogGroupsParams{MaxItems: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if api.logGroupCalls != 1 {
		t.Errorf("expected pagination to stop after 1 page, got %d", api.logGroupCalls)
	}
}

func TestClientDescribeQueryDefinitions_FollowsToken(t *testing.T) {
	t.Parallel()

	api := &fakeCWAPI{
		queryDefPages: []*cloudwatchlogs.DescribeQueryDefinitionsOutput{
			{
				QueryDefinitions: []types.QueryDefinition{
					{Name: aws.String("first"), QueryString: aws.String("fields @message")},
				},
				NextToken: aws.String("page-2"),
			},
			{
				QueryDefinitions: []types.QueryDefinition{
					{Name: aws.String("second"), QueryString: aws.String("fields @timestamp")},
				},
			},
		},
	}
	client := newClientWithAPI(api)

	queries, err := client.DescribeQueryDefinitions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 2 || queries[1].Name != "second" {
		t.Errorf("unexpected queries: %+v", queries)
	}
	if api.queryDefCalls != 2 {
		t.Errorf("expected 2 pages fetched, got %d", api.queryDefCalls)
	}
}

func TestClientStartQuery(t *testing.T) {
	t.Parallel()

	api := &fakeCWAPI{
		startQueryOutput: &cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")},
	}
	client := newClientWithAPI(api)

	id, err := client.StartQuery(context.Background(), StartQueryParams{
		LogGroupNames: []string{"/a"},
		QueryString:   "fields @message",
		StartTime:     1745092800,
		EndTime:       1745096400,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "q-1" {
		t.Errorf("expected q-1, got %s", id)
	}
}

func TestClientStartQuery_NoID(t *testing.T) {
	t.Parallel()

	client := newClientWithAPI(&fakeCWAPI{
		startQueryOutput: &cloudwatchlogs.StartQueryOutput{},
	})

	_, err := client.StartQuery(context.Background(), StartQueryParams{
		LogGroupNames: []string{"/a"},
		QueryString:   "fields @message",
	})
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Code != ErrRemoteAPI {
		t.Errorf("expected code %s, got %s", ErrRemoteAPI, qe.Code)
	}
}
