package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Transport carries an MCP server to its clients.
type Transport interface {
	Serve(ctx context.Context, server *mcp.Server) error
}

var (
	_ Transport = (*StdioTransport)(nil)
	_ Transport = (*HTTPTransport)(nil)
)

// StdioTransport serves a single client over stdin and stdout.
type StdioTransport struct{}

// Serve blocks until the context is canceled or the client disconnects.
func (StdioTransport) Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPTransport serves clients with the streamable HTTP transport.
type HTTPTransport struct {
	Addr string

	// ShutdownTimeout bounds graceful shutdown once ctx is canceled.
	ShutdownTimeout time.Duration
}

// Handler returns the HTTP handler for server.
func (t *HTTPTransport) Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// Serve listens on Addr until ctx is canceled.
func (t *HTTPTransport) Serve(ctx context.Context, server *mcp.Server) error {
	httpServer := &http.Server{
		Addr:              t.Addr,
		Handler:           t.Handler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		timeout := t.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
