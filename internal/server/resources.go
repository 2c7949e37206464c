package server

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceURIPrefix = "cloudwatch://syntax/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: "cloudwatch://syntax/{+path}",
			Name:        "query-syntax",
			Description: "Logs Insights query syntax reference. Paths: overview, commands, commands/<name>, functions, functions/<category>, examples, examples/<category>, best_practices, troubleshooting.",
			MIMEType:    "application/json",
		},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			uri := req.Params.URI
			if !strings.HasPrefix(uri, resourceURIPrefix) {
				return nil, mcp.ResourceNotFoundError(uri)
			}

			queryType, filter := splitSyntaxPath(strings.TrimPrefix(uri, resourceURIPrefix))
			doc, err := s.store.Lookup(queryType, filter)
			if err != nil {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return nil, mcp.ResourceNotFoundError(uri)
			}

			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(b),
				}},
			}, nil
		},
	)
}

// splitSyntaxPath maps a resource path like "commands/pattern" to a
// lookup type and filter.
func splitSyntaxPath(path string) (queryType, filter string) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "overview", ""
	}
	queryType, filter, _ = strings.Cut(path, "/")
	return queryType, filter
}
