// Package server wraps the MCP server with lifecycle and middleware.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with its logger and lifecycle.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New creates an MCP server advertising the given version.
func New(version string, logger *slog.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    "flint",
		Version: version,
	}

	return &Server{
		mcp:    mcp.NewServer(impl, nil),
		logger: logger,
	}
}

// Setup installs the request logging middleware.
func (s *Server) Setup() {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger))
}

// MCPServer returns the underlying MCP server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves on stdio and blocks until disconnect or context cancellation.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
