// Package mcp exposes the documentation tools over the Model Context
// Protocol.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/philschmid/gemdocs"
)

// Name and Version identify the server to MCP clients.
const (
	Name    = "Gemini API Docs"
	Version = "0.1.0"
)

// ErrMissingDocsService is returned when NewServer gets no DocsService.
var ErrMissingDocsService = errors.New("docs service is required")

// Server is the MCP server for the documentation tools.
type Server struct {
	docs   gemdocs.DocsService
	server *mcp.Server
}

// NewServer creates a Server with every tool registered.
func NewServer(docs gemdocs.DocsService) (*Server, error) {
	if docs == nil {
		return nil, ErrMissingDocsService
	}

	impl := &mcp.Implementation{
		Name:    Name,
		Version: Version,
	}

	s := &Server{
		docs:   docs,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves over transport until ctx is canceled or the client goes away.
func (s *Server) Run(ctx context.Context, transport Transport) error {
	return transport.Serve(ctx, s.server)
}
