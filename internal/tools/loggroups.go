package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/ops"
	"github.com/logscout/logscout/internal/platform"
)

// DescribeLogGroupsInput is the input type for describe_log_groups.
type DescribeLogGroupsInput struct {
	AccountIdentifiers    []string `json:"accountIdentifiers,omitempty"`
	IncludeLinkedAccounts bool     `json:"includeLinkedAccounts,omitempty"`
	LogGroupClass         string   `json:"logGroupClass,omitempty"`
	LogGroupNamePrefix    string   `json:"logGroupNamePrefix,omitempty"`
	MaxItems              int      `json:"maxItems,omitempty"`
	Region                string   `json:"region,omitempty"`
}

// RegisterDescribeLogGroups registers the describe_log_groups tool.
func RegisterDescribeLogGroups(srv *mcp.Server, reg *platform.Registry, defaultRegion string) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "describe_log_groups",
		Description: "List CloudWatch log groups, optionally filtered by name prefix, class, or account, together with the saved queries that apply to them.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Describe log groups",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input DescribeLogGroupsInput) (*mcp.CallToolResult, any, error) {
		client, err := resolveClient(ctx, reg, input.Region, defaultRegion)
		if err != nil {
			return convertError(err), nil, nil
		}
		result, err := ops.DescribeLogGroups(ctx, client, platform.ListLogGroupsParams{
			AccountIdentifiers:    input.AccountIdentifiers,
			IncludeLinkedAccounts: input.IncludeLinkedAccounts,
			LogGroupClass:         input.LogGroupClass,
			NamePrefix:            input.LogGroupNamePrefix,
			MaxItems:              int32(input.MaxItems),
		})
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
