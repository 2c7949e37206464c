package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/platform"
)

// testServer returns an MCP server and a registry whose every region
// resolves to the given mock.
func testServer(t *testing.T, mock *platform.Mock) (*mcp.Server, *platform.Registry) {
	t.Helper()
	srv := mcp.NewServer(&mcp.Implementation{Name: "test-server", Version: "0.1"}, nil)
	reg := platform.NewRegistryWithBuilder(func(ctx context.Context, region string, creds platform.Credentials) (platform.LogsAPI, error) {
		return mock, nil
	})
	return srv, reg
}

// callTool connects to a test server and calls a named tool with the given arguments.
func callTool(t *testing.T, srv *mcp.Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, st, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

// decodeResult unmarshals a JSON tool result into out.
func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	if result.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, result))
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

// decodeToolError unmarshals the structured error payload of a failed call.
func decodeToolError(t *testing.T, result *mcp.CallToolResult) map[string]string {
	t.Helper()
	if !result.IsError {
		t.Fatalf("expected IsError, got success: %s", resultText(t, result))
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode error payload %q: %v", resultText(t, result), err)
	}
	return payload
}
