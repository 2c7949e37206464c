package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

// AnalyzeLogGroupInput is the input type for analyze_log_group.
type AnalyzeLogGroupInput struct {
	LogGroupARN string `json:"logGroupArn"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxTimeout  int    `json:"maxTimeout,omitempty"`
	Region      string `json:"region,omitempty"`
}

// RegisterAnalyzeLogGroup registers the analyze_log_group tool.
func RegisterAnalyzeLogGroup(srv *mcp.Server, reg *platform.Registry, defaultRegion string, maxWait time.Duration) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_log_group",
		Description: "Analyze a log group over a time window: unsuppressed anomalies from its anomaly detectors, the top 5 message patterns, and the top 5 error-related patterns. Times are ISO 8601.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Analyze log group",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeLogGroupInput) (*mcp.CallToolResult, any, error) {
		client, err := resolveClient(ctx, reg, input.Region, defaultRegion)
		if err != nil {
			return convertError(err), nil, nil
		}
		wait := maxWait
		if input.MaxTimeout > 0 {
			wait = time.Duration(input.MaxTimeout) * time.Second
		}
		result, err := ops.AnalyzeLogGroup(ctx, client, input.LogGroupARN, input.StartTime, input.EndTime, wait)
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
