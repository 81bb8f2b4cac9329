package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/philschmid/gemdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDocs() *mock.DocsService {
	return &mock.DocsService{
		SearchDocumentationFn: func(_ context.Context, queries []string) string {
			return "search:" + strings.Join(queries, "|")
		},
		GetCapabilityPageFn: func(_ context.Context, capability string) string {
			return "page:" + capability
		},
		GetCurrentModelFn: func(context.Context) string {
			return "models"
		},
		RefreshDocumentationFn: func(context.Context) string {
			return "Documentation refresh started."
		},
		IngestionStatusFn: func(context.Context) string {
			return "Status: running"
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	t.Run("nil docs service returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.ErrorIs(t, err, ErrMissingDocsService)
		assert.Nil(t, server)
	})

	t.Run("valid docs service creates server", func(t *testing.T) {
		server, err := NewServer(fakeDocs())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestServer_handlers(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(fakeDocs())
	require.NoError(t, err)

	t.Run("search passes queries through", func(t *testing.T) {
		res, _, err := server.handleSearch(ctx, nil, SearchInput{Queries: []string{"gemini 2.5", "embeddings"}})
		require.NoError(t, err)
		assert.Equal(t, "search:gemini 2.5|embeddings", resultText(t, res))
	})

	t.Run("capability page with title", func(t *testing.T) {
		res, _, err := server.handleCapabilityPage(ctx, nil, CapabilityInput{Capability: "Embeddings"})
		require.NoError(t, err)
		assert.Equal(t, "page:Embeddings", resultText(t, res))
	})

	t.Run("capability page without title", func(t *testing.T) {
		res, _, err := server.handleCapabilityPage(ctx, nil, CapabilityInput{})
		require.NoError(t, err)
		assert.Equal(t, "page:", resultText(t, res))
	})

	t.Run("current model", func(t *testing.T) {
		res, _, err := server.handleCurrentModel(ctx, nil, NoInput{})
		require.NoError(t, err)
		assert.Equal(t, "models", resultText(t, res))
	})

	t.Run("refresh", func(t *testing.T) {
		res, _, err := server.handleRefresh(ctx, nil, NoInput{})
		require.NoError(t, err)
		assert.Equal(t, "Documentation refresh started.", resultText(t, res))
	})

	t.Run("status", func(t *testing.T) {
		res, _, err := server.handleStatus(ctx, nil, NoInput{})
		require.NoError(t, err)
		assert.Equal(t, "Status: running", resultText(t, res))
	})
}

type inMemoryTransport struct {
	transport *mcp.InMemoryTransport
}

func (t inMemoryTransport) Serve(ctx context.Context, server *mcp.Server) error {
	session, err := server.Connect(ctx, t.transport, nil)
	if err != nil {
		return err
	}
	return session.Wait()
}

func TestServer_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer(fakeDocs())
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, inMemoryTransport{transport: serverTransport}) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Run("lists every tool", func(t *testing.T) {
		res, err := session.ListTools(ctx, nil)
		require.NoError(t, err)

		var names []string
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{
			"search_documentation",
			"get_capability_page",
			"get_current_model",
			"refresh_documentation",
			"ingestion_status",
		}, names)
	})

	t.Run("calls search over the protocol", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "search_documentation",
			Arguments: map[string]any{"queries": []string{"function calling"}},
		})
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "search:function calling", resultText(t, res))
	})

	t.Run("calls capability page without arguments", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get_capability_page",
			Arguments: map[string]any{},
		})
		require.NoError(t, err)
		assert.Equal(t, "page:", resultText(t, res))
	})

	require.NoError(t, session.Close())
	<-done
}
