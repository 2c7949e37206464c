// Package server wires the registry, knowledge store, and tool
// registrations into a runnable MCP server on stdio.
package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logscout/logscout/internal/knowledge"
	"github.com/logscout/logscout/internal/platform"
	"github.com/logscout/logscout/internal/tools"
)

// Version, Commit, Built are set by ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

// Server wraps the MCP server with CloudWatch-specific configuration.
type Server struct {
	server        *mcp.Server
	registry      *platform.Registry
	store         *knowledge.Store
	defaultRegion string
	maxWait       time.Duration
}

// New creates the MCP server with all tools registered.
func New(registry *platform.Registry, store *knowledge.Store, defaultRegion string, maxWait time.Duration) *Server {
	srv := mcp.NewServer(
		&mcp.Implementation{Name: "logscout", Version: Version},
		&mcp.ServerOptions{Instructions: Instructions},
	)

	s := &Server{
		server:        srv,
		registry:      registry,
		store:         store,
		defaultRegion: defaultRegion,
		maxWait:       maxWait,
	}

	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) registerTools() {
	tools.RegisterDescribeLogGroups(s.server, s.registry, s.defaultRegion)
	tools.RegisterAnalyzeLogGroup(s.server, s.registry, s.defaultRegion, s.maxWait)
	tools.RegisterExecuteQuery(s.server, s.registry, s.defaultRegion, s.maxWait)
	tools.RegisterGetQueryResults(s.server, s.registry, s.defaultRegion, s.maxWait)
	tools.RegisterCancelQuery(s.server, s.registry, s.defaultRegion)
	tools.RegisterQuerySyntax(s.server, s.store)
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server (for testing).
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
