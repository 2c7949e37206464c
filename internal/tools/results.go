package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

// GetQueryResultsInput is the input type for get_logs_insight_query_results.
type GetQueryResultsInput struct {
	QueryID    string `json:"queryId"`
	MaxTimeout int    `json:"maxTimeout,omitempty"`
	Region     string `json:"region,omitempty"`
}

// RegisterGetQueryResults registers the get_logs_insight_query_results tool.
func RegisterGetQueryResults(srv *mcp.Server, reg *platform.Registry, defaultRegion string, defaultMaxWait time.Duration) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_logs_insight_query_results",
		Description: "Fetch the results of a previously started Logs Insights query by its queryId, polling until it finishes or maxTimeout seconds elapse.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Get query results",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetQueryResultsInput) (*mcp.CallToolResult, any, error) {
		client, err := resolveClient(ctx, reg, input.Region, defaultRegion)
		if err != nil {
			return convertError(err), nil, nil
		}
		maxWait := defaultMaxWait
		if input.MaxTimeout > 0 {
			maxWait = time.Duration(input.MaxTimeout) * time.Second
		}
		result, err := ops.GetResults(ctx, client, input.QueryID, maxWait)
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
