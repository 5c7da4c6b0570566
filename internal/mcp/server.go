// ABOUTME: MCP server setup for the training log.
// ABOUTME: Wraps the MCP server with repository and analytics access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracklog/tracklog/internal/analytics"
	"github.com/tracklog/tracklog/internal/storage"
)

// Server wraps the MCP server with storage and analytics access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	engine    *analytics.Engine
}

// NewServer creates a new MCP server over the given repository.
func NewServer(repo storage.Repository, engine *analytics.Engine) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tracklog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		engine:    engine,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
