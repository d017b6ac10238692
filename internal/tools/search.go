package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// SearchTool handles the search_best_practices MCP tool.
type SearchTool struct {
	provider knowledge.Provider
}

// NewSearchTool creates a SearchTool with its dependencies.
func NewSearchTool(provider knowledge.Provider) *SearchTool {
	return &SearchTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_best_practices",
		mcp.WithDescription(
			"Search across all Redis best practices using keywords. "+
				"Returns matching practices ranked by relevance. Use this when "+
				"you're not sure which topic to look up, or when searching for "+
				"specific patterns like 'how to avoid hot keys', 'rate limiting', "+
				"'cache stampede', 'KEYS command alternatives', 'large values', "+
				"or 'blocking operations'.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(
				"Search query - can be a question, keyword, or description of "+
					"what you're looking for",
			),
		),
	)
}

// Handle processes the search_best_practices tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	return mcp.NewToolResultText(practices.SearchPractices(t.provider.Base(), query)), nil
}
