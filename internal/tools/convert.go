// Package tools registers the MCP tools exposed by the server and
// converts between tool inputs and the ops layer.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/platform"
)

// errorText wraps a message in a failed CallToolResult.
func errorText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// convertError renders err as a failed tool call. A QueryError becomes a
// JSON object carrying its code, message, and suggestion so the caller
// can branch on the code; anything else degrades to its plain Error text.
func convertError(err error) *mcp.CallToolResult {
	var qe *platform.QueryError
	if !errors.As(err, &qe) {
		return errorText(err.Error())
	}
	payload := map[string]string{"code": qe.Code, "error": qe.Message}
	if qe.Suggestion != "" {
		payload["suggestion"] = qe.Suggestion
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return errorText(fmt.Sprintf("encode error payload: %v", err))
	}
	return errorText(string(b))
}

// jsonResult returns v serialized as the single text content of a
// successful tool call.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return errorText(fmt.Sprintf("encode result: %v", err))
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

// resolveClient returns the client for the requested region, falling
// back to defaultRegion when the tool input leaves region empty.
func resolveClient(ctx context.Context, reg *platform.Registry, region, defaultRegion string) (platform.LogsAPI, error) {
	if region == "" {
		region = defaultRegion
	}
	return reg.Get(ctx, region)
}
