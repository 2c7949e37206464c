package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

// CancelQueryInput is the input type for cancel_logs_insight_query.
type CancelQueryInput struct {
	QueryID string `json:"queryId"`
	Region  string `json:"region,omitempty"`
}

// RegisterCancelQuery registers the cancel_logs_insight_query tool.
func RegisterCancelQuery(srv *mcp.Server, reg *platform.Registry, defaultRegion string) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "cancel_logs_insight_query",
		Description: "Stop a running Logs Insights query by its queryId. Returns success=false when the query already finished or is unknown.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Cancel query",
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CancelQueryInput) (*mcp.CallToolResult, any, error) {
		client, err := resolveClient(ctx, reg, input.Region, defaultRegion)
		if err != nil {
			return convertError(err), nil, nil
		}
		result, err := ops.CancelQuery(ctx, client, input.QueryID)
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
