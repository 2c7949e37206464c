package platform

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// maxAnomalyLogSamples bounds how many sample events are kept per anomaly.
// One sample is enough context for a tool consumer; the rest is token waste.
const maxAnomalyLogSamples = 1

// EpochMSToISO converts epoch milliseconds to an ISO-8601 UTC timestamp
// with an explicit +00:00 offset.
func EpochMSToISO(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05+00:00")
}

func mapLogGroup(lg types.LogGroup) LogGroup {
	props := make([]string, 0, len(lg.InheritedProperties))
	for _, p := range lg.InheritedProperties {
		props = append(props, string(p))
	}
	arn := aws.ToString(lg.LogGroupArn)
	if arn == "" {
		arn = aws.ToString(lg.Arn)
	}
	return LogGroup{
		LogGroupName:         aws.ToString(lg.LogGroupName),
		CreationTime:         EpochMSToISO(aws.ToInt64(lg.CreationTime)),
		RetentionInDays:      lg.RetentionInDays,
		MetricFilterCount:    aws.ToInt32(lg.MetricFilterCount),
		StoredBytes:          aws.ToInt64(lg.StoredBytes),
		KmsKeyID:             aws.ToString(lg.KmsKeyId),
		DataProtectionStatus: string(lg.DataProtectionStatus),
		InheritedProperties:  props,
		LogGroupClass:        string(lg.LogGroupClass),
		LogGroupArn:          arn,
	}
}

func mapSavedQuery(qd types.QueryDefinition) SavedQuery {
	return SavedQuery{
		Name:          aws.ToString(qd.Name),
		QueryString:   aws.ToString(qd.QueryString),
		LogGroupNames: qd.LogGroupNames,
	}
}

// mapQueryResults flattens the [][]ResultField rows into field→value maps,
// preserving row order exactly as reported.
func mapQueryResults(out *cloudwatchlogs.GetQueryResultsOutput, queryID string) *QueryOutcome {
	outcome := &QueryOutcome{
		QueryID: queryID,
		Status:  string(out.Status),
	}
	if out.Statistics != nil {
		outcome.Statistics = &QueryStatistics{
			BytesScanned:   out.Statistics.BytesScanned,
			RecordsMatched: out.Statistics.RecordsMatched,
			RecordsScanned: out.Statistics.RecordsScanned,
		}
	}
	for _, line := range out.Results {
		row := make(map[string]string, len(line))
		for _, field := range line {
			row[aws.ToString(field.Field)] = aws.ToString(field.Value)
		}
		outcome.Results = append(outcome.Results, row)
	}
	return outcome
}

func mapAnomalyDetector(d types.AnomalyDetector) AnomalyDetector {
	return AnomalyDetector{
		AnomalyDetectorArn:    aws.ToString(d.AnomalyDetectorArn),
		DetectorName:          aws.ToString(d.DetectorName),
		AnomalyDetectorStatus: string(d.AnomalyDetectorStatus),
	}
}

func mapAnomaly(a types.Anomaly) Anomaly {
	// Histogram keys arrive as stringified epoch-ms.
	histogram := make(map[string]int64, len(a.Histogram))
	for ts, count := range a.Histogram {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			histogram[EpochMSToISO(ms)] = count
		} else {
			histogram[ts] = count
		}
	}

	samples := make([]LogSample, 0, maxAnomalyLogSamples)
	for _, ev := range a.LogSamples {
		if len(samples) == maxAnomalyLogSamples {
			break
		}
		samples = append(samples, LogSample{
			Timestamp: EpochMSToISO(aws.ToInt64(ev.Timestamp)),
			Message:   aws.ToString(ev.Message),
		})
	}

	return Anomaly{
		AnomalyDetectorArn: aws.ToString(a.AnomalyDetectorArn),
		LogGroupArnList:    a.LogGroupArnList,
		FirstSeen:          EpochMSToISO(a.FirstSeen),
		LastSeen:           EpochMSToISO(a.LastSeen),
		Description:        aws.ToString(a.Description),
		Priority:           aws.ToString(a.Priority),
		PatternRegex:       aws.ToString(a.PatternRegex),
		PatternString:      aws.ToString(a.PatternString),
		LogSamples:         samples,
		Histogram:          histogram,
	}
}
