package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

// ExecuteQueryInput is the input type for execute_log_insights_query.
// Exactly one of LogGroupNames or LogGroupIdentifiers must be set.
type ExecuteQueryInput struct {
	LogGroupNames       []string `json:"logGroupNames,omitempty"`
	LogGroupIdentifiers []string `json:"logGroupIdentifiers,omitempty"`
	StartTime           string   `json:"startTime"`
	EndTime             string   `json:"endTime"`
	QueryString         string   `json:"queryString"`
	Limit               int      `json:"limit,omitempty"`
	MaxTimeout          int      `json:"maxTimeout,omitempty"`
	Region              string   `json:"region,omitempty"`
}

// RegisterExecuteQuery registers the execute_log_insights_query tool.
func RegisterExecuteQuery(srv *mcp.Server, reg *platform.Registry, defaultRegion string, defaultMaxWait time.Duration) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "execute_log_insights_query",
		Description: "Start a CloudWatch Logs Insights query and poll for its results for up to maxTimeout seconds. On timeout the query keeps running remotely; re-poll with get_logs_insight_query_results or stop it with cancel_logs_insight_query.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Execute Logs Insights query",
			ReadOnlyHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteQueryInput) (*mcp.CallToolResult, any, error) {
		client, err := resolveClient(ctx, reg, input.Region, defaultRegion)
		if err != nil {
			return convertError(err), nil, nil
		}
		maxWait := defaultMaxWait
		if input.MaxTimeout > 0 {
			maxWait = time.Duration(input.MaxTimeout) * time.Second
		}
		result, err := ops.ExecuteQuery(ctx, client, ops.QueryRequest{
			LogGroupNames:       input.LogGroupNames,
			LogGroupIdentifiers: input.LogGroupIdentifiers,
			QueryString:         input.QueryString,
			StartTime:           input.StartTime,
			EndTime:             input.EndTime,
			Limit:               int32(input.Limit),
		}, maxWait)
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
