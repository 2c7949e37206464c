package platform

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

func TestEpochMSToISO(t *testing.T) {
	t.Parallel()

	got := EpochMSToISO(1745092800000)
	want := "2025-04-19T20:00:00+00:00"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMapLogGroup_ArnFallback(t *testing.T) {
	t.Parallel()

	lg := mapLogGroup(types.LogGroup{
		LogGroupName: aws.String("/aws/lambda/api"),
		CreationTime: aws.Int64(1745092800000),
		Arn:          aws.String("arn:aws:logs:us-east-1:1:log-group:/aws/lambda/api:*"),
	})
	if lg.LogGroupArn != "arn:aws:logs:us-east-1:1:log-group:/aws/lambda/api:*" {
		t.Errorf("expected fallback to Arn, got %q", lg.LogGroupArn)
	}
	if lg.CreationTime != "2025-04-19T20:00:00+00:00" {
		t.Errorf("creation time not converted: %s", lg.CreationTime)
	}
}

func TestMapQueryResults(t *testing.T) {
	t.Parallel()

	out := &cloudwatchlogs.GetQueryResultsOutput{
		Status: types.QueryStatusComplete,
		Statistics: &types.QueryStatistics{
			BytesScanned:   2048,
			RecordsMatched: 3,
			RecordsScanned: 100,
		},
		Results: [][]types.ResultField{
			{
				{Field: aws.String("@timestamp"), Value: aws.String("2025-04-19 20:30:00.000")},
				{Field: aws.String("@message"), Value: aws.String("started")},
			},
			{
				{Field: aws.String("@message"), Value: aws.String("ready")},
			},
		},
	}

	outcome := mapQueryResults(out, "q-1")
	if outcome.QueryID != "q-1" || outcome.Status != StatusComplete {
		t.Errorf("unexpected header: %+v", outcome)
	}
	if len(outcome.Results) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(outcome.Results))
	}
	if outcome.Results[0]["@message"] != "started" || outcome.Results[1]["@message"] != "ready" {
		t.Errorf("row order or values wrong: %v", outcome.Results)
	}
	if outcome.Statistics.RecordsMatched != 3 {
		t.Errorf("statistics not mapped: %+v", outcome.Statistics)
	}
}

func TestMapAnomaly(t *testing.T) {
	t.Parallel()

	anomaly := mapAnomaly(types.Anomaly{
		AnomalyDetectorArn: aws.String("arn:detector"),
		LogGroupArnList:    []string{"arn:group"},
		FirstSeen:          1745092800000,
		LastSeen:           1745096400000,
		Description:        aws.String("error spike"),
		Histogram:          map[string]int64{"1745092800000": 7, "garbage": 1},
		LogSamples: []types.LogEvent{
			{Timestamp: aws.Int64(1745092800000), Message: aws.String("first")},
			{Timestamp: aws.Int64(1745092801000), Message: aws.String("second")},
		},
	})

	if anomaly.FirstSeen != "2025-04-19T20:00:00+00:00" || anomaly.LastSeen != "2025-04-19T21:00:00+00:00" {
		t.Errorf("timestamps not converted: %s / %s", anomaly.FirstSeen, anomaly.LastSeen)
	}
	if got := anomaly.Histogram["2025-04-19T20:00:00+00:00"]; got != 7 {
		t.Errorf("histogram key not converted: %v", anomaly.Histogram)
	}
	// Unparseable keys pass through untouched.
	if got := anomaly.Histogram["garbage"]; got != 1 {
		t.Errorf("unparseable key dropped: %v", anomaly.Histogram)
	}
	if len(anomaly.LogSamples) != 1 || anomaly.LogSamples[0].Message != "first" {
		t.Errorf("samples not trimmed to one: %v", anomaly.LogSamples)
	}
	if anomaly.LogSamples[0].Timestamp != "2025-04-19T20:00:00+00:00" {
		t.Errorf("sample timestamp not converted: %s", anomaly.LogSamples[0].Timestamp)
	}
}

func TestMapAnomaly_NilSampleTimestamp(t *testing.T) {
	t.Parallel()

	anomaly := mapAnomaly(types.Anomaly{
		LogSamples: []types.LogEvent{
			{Message: aws.String("no timestamp")},
		},
	})

	if len(anomaly.LogSamples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(anomaly.LogSamples))
	}
	if anomaly.LogSamples[0].Timestamp != EpochMSToISO(0) {
		t.Errorf("nil timestamp should map to the epoch, got %s", anomaly.LogSamples[0].Timestamp)
	}
}
