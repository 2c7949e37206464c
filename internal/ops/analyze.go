package ops

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/logscout/logscout/internal/platform"
)

const (
	// patternScanLimit is how many aggregated patterns the remote query
	// fetches; the analyzer truncates locally so the error-pattern pass
	// has enough input to filter.
	patternScanLimit = 50
	// topPatternLimit caps both top-pattern lists.
	topPatternLimit = 5

	patternQuery = "pattern @message | sort @sampleCount desc | limit 50"
)

// AnalysisResult is the outcome of analyzing one log group.
type AnalysisResult struct {
	AnomalyDetectors []platform.AnomalyDetector `json:"anomalyDetectors"`
	Anomalies        []platform.Anomaly         `json:"anomalies"`
	TopPatterns      []PatternCount             `json:"topPatterns"`
	TopErrorPatterns []PatternCount             `json:"topErrorPatterns"`
}

// AnalyzeLogGroup inspects one log group over a time window: anomaly
// detectors and their findings, plus the most frequent message patterns
// and the error-related subset. The anomaly listing and the pattern
// query run concurrently; neither waits on the other and the join
// collects both.
func AnalyzeLogGroup(ctx context.Context, client platform.LogsAPI, logGroupARN, startTime, endTime string, maxWait time.Duration) (*AnalysisResult, error) {
	if logGroupARN == "" {
		return nil, platform.NewQueryError(platform.ErrInvalidParameter,
			"Log group ARN is required",
			"Use the logGroupArn returned by describe_log_groups")
	}
	if _, err := parseISOTime(startTime); err != nil {
		return nil, platform.NewQueryError(platform.ErrInvalidParameter,
			fmt.Sprintf("invalid start_time %q: %v", startTime, err),
			"Use ISO-8601 with an explicit offset")
	}
	if _, err := parseISOTime(endTime); err != nil {
		return nil, platform.NewQueryError(platform.ErrInvalidParameter,
			fmt.Sprintf("invalid end_time %q: %v", endTime, err),
			"Use ISO-8601 with an explicit offset")
	}

	result := &AnalysisResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detectors, anomalies, err := collectAnomalies(gctx, client, logGroupARN, startTime, endTime)
		if err != nil {
			return err
		}
		result.AnomalyDetectors = detectors
		result.Anomalies = anomalies
		return nil
	})
	g.Go(func() error {
		top, topErrors, err := collectPatterns(gctx, client, logGroupARN, startTime, endTime, maxWait)
		if err != nil {
			return err
		}
		result.TopPatterns = top
		result.TopErrorPatterns = topErrors
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func collectAnomalies(ctx context.Context, client platform.LogsAPI, logGroupARN, startTime, endTime string) ([]platform.AnomalyDetector, []platform.Anomaly, error) {
	detectors, err := client.ListAnomalyDetectors(ctx, logGroupARN)
	if err != nil {
		return nil, nil, err
	}

	var applicable []platform.Anomaly
	for _, detector := range detectors {
		anomalies, err := client.ListAnomalies(ctx, detector.AnomalyDetectorArn)
		if err != nil {
			return nil, nil, err
		}
		for _, anomaly := range anomalies {
			if isApplicableAnomaly(anomaly, logGroupARN, startTime, endTime) {
				applicable = append(applicable, anomaly)
			}
		}
	}
	return detectors, applicable, nil
}

// isApplicableAnomaly keeps anomalies whose observed window overlaps the
// requested one and that actually concern the log group under analysis.
// On unparseable timestamps, lexicographic comparison of the ISO strings
// is an acceptable fallback.
func isApplicableAnomaly(anomaly platform.Anomaly, logGroupARN, startTime, endTime string) bool {
	firstSeen, errFirst := parseISOTime(anomaly.FirstSeen)
	lastSeen, errLast := parseISOTime(anomaly.LastSeen)
	start, errStart := parseISOTime(startTime)
	end, errEnd := parseISOTime(endTime)

	if errFirst == nil && errLast == nil && errStart == nil && errEnd == nil {
		if firstSeen.After(end) || lastSeen.Before(start) {
			return false
		}
	} else if anomaly.FirstSeen > endTime || anomaly.LastSeen < startTime {
		return false
	}

	for _, arn := range anomaly.LogGroupArnList {
		if arn == logGroupARN {
			return true
		}
	}
	return false
}

func collectPatterns(ctx context.Context, client platform.LogsAPI, logGroupARN, startTime, endTime string, maxWait time.Duration) ([]PatternCount, []PatternCount, error) {
	outcome, err := ExecuteQuery(ctx, client, QueryRequest{
		LogGroupIdentifiers: []string{logGroupARN},
		QueryString:         patternQuery,
		StartTime:           startTime,
		EndTime:             endTime,
		Limit:               patternScanLimit,
	}, maxWait)
	if err != nil {
		return nil, nil, err
	}

	switch outcome.Status {
	case platform.StatusComplete:
		// fall through to aggregation
	case platform.StatusTimeout:
		// Pattern analysis is best-effort: a slow query yields empty
		// lists rather than failing the whole analysis.
		return nil, nil, nil
	default:
		return nil, nil, platform.NewQueryError(platform.ErrQueryExecution,
			fmt.Sprintf("pattern query %s ended with status %s", outcome.QueryID, outcome.Status),
			"Narrow the time range and retry")
	}

	CleanPatternRows(outcome.Results)
	top := TopPatterns(outcome.Results, "@pattern", topPatternLimit)
	topErrors := TopErrorPatterns(outcome.Results, "@pattern", topPatternLimit)
	return top, topErrors, nil
}
