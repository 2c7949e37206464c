package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/knowledge"
)

// QuerySyntaxInput is the input type for get_query_syntax_documentation.
type QuerySyntaxInput struct {
	QueryType        string `json:"queryType,omitempty"`
	CommandName      string `json:"commandName,omitempty"`
	FunctionCategory string `json:"functionCategory,omitempty"`
	SearchTerm       string `json:"searchTerm,omitempty"`
	SearchLimit      int    `json:"searchLimit,omitempty"`
	ExampleCategory  string `json:"exampleCategory,omitempty"`
}

// filter picks the narrowing parameter that matches the query type.
func (in QuerySyntaxInput) filter() string {
	switch in.QueryType {
	case "commands":
		return in.CommandName
	case "functions":
		return in.FunctionCategory
	case "examples":
		return in.ExampleCategory
	case "search":
		return in.SearchTerm
	default:
		return ""
	}
}

// RegisterQuerySyntax registers the get_query_syntax_documentation tool.
func RegisterQuerySyntax(srv *mcp.Server, store *knowledge.Store) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_query_syntax_documentation",
		Description: "Look up Logs Insights query syntax. queryType selects the section: overview, commands (optionally commandName), functions (optionally functionCategory), examples (optionally exampleCategory), search (searchTerm required), best_practices, troubleshooting.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Query syntax reference",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input QuerySyntaxInput) (*mcp.CallToolResult, any, error) {
		var doc knowledge.Documentation
		var err error
		if input.QueryType == "search" {
			doc, err = store.Search(input.SearchTerm, input.SearchLimit)
		} else {
			doc, err = store.Lookup(input.QueryType, input.filter())
		}
		if err != nil {
			return convertError(err), nil, nil
		}
		return jsonResult(doc), nil, nil
	})
}
