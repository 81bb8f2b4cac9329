package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for search_documentation.
type SearchInput struct {
	Queries []string `json:"queries" jsonschema:"List of up to 3 optimized keyword queries. Good examples: ['function calling', 'gemini 2.5', 'function declarations']. Bad example: ['how do I do function calling with gemini?']"`
}

// CapabilityInput is the input schema for get_capability_page.
type CapabilityInput struct {
	Capability string `json:"capability,omitempty" jsonschema:"The EXACT title of the documentation page to retrieve (case-sensitive). If you do not know the exact title, OMIT this argument to receive a master list of all available titles."`
}

// NoInput is the input schema for tools without arguments.
type NoInput struct{}

const searchDescription = `Performs a keyword-based full-text search on Gemini documentation.
IMPORTANT: This uses standard text matching, NOT semantic search.
To ensure results, you MUST optimize queries by removing stop words (e.g., 'with', 'the', 'in', 'how to') and focusing ONLY on core nouns and verbs.
If a query fails, try simpler synonyms or root words.`

const capabilityDescription = `Retrieves the full content of a specific documentation page by its exact title.
You can call this tool WITHOUT arguments first to see a master list of all available page titles.
Then, call it again with the exact title you need.`

const modelDescription = "Shortcut tool to explicitly retrieve the canonical 'Gemini Models' documentation page. " +
	"Use this to fast-track finding details about available model variants (Pro, Flash, etc.), " +
	"their capabilities, versioning, and context window sizes."

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: searchDescription,
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_capability_page",
		Description: capabilityDescription,
	}, s.handleCapabilityPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_current_model",
		Description: modelDescription,
	}, s.handleCurrentModel)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_documentation",
		Description: "Starts a background refresh of the documentation index from llms.txt. Returns immediately.",
	}, s.handleRefresh)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingestion_status",
		Description: "Reports the state of the latest documentation refresh: idle, running, completed or failed.",
	}, s.handleStatus)
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	return textResult(s.docs.SearchDocumentation(ctx, input.Queries)), nil, nil
}

func (s *Server) handleCapabilityPage(ctx context.Context, _ *mcp.CallToolRequest, input CapabilityInput) (*mcp.CallToolResult, any, error) {
	return textResult(s.docs.GetCapabilityPage(ctx, input.Capability)), nil, nil
}

func (s *Server) handleCurrentModel(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
	return textResult(s.docs.GetCurrentModel(ctx)), nil, nil
}

func (s *Server) handleRefresh(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
	return textResult(s.docs.RefreshDocumentation(ctx)), nil, nil
}

func (s *Server) handleStatus(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
	return textResult(s.docs.IngestionStatus(ctx)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
