package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// GuideTool handles the get_full_guide MCP tool.
type GuideTool struct {
	provider knowledge.Provider
}

// NewGuideTool creates a GuideTool with its dependencies.
func NewGuideTool(provider knowledge.Provider) *GuideTool {
	return &GuideTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *GuideTool) Definition() mcp.Tool {
	return mcp.NewTool("get_full_guide",
		mcp.WithDescription(
			"Get the complete Redis best practices guide: every rule across "+
				"all categories in one document. Use this when you need "+
				"comprehensive context or when working on a large Redis "+
				"implementation that touches multiple areas. Categories cover "+
				"data structures and keys, memory and expiration, connections "+
				"and performance, JSON documents, the query engine, vector "+
				"search, semantic caching, streams and pub/sub, clustering, "+
				"security, and observability.",
		),
	)
}

// Handle processes the get_full_guide tool call.
func (t *GuideTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(practices.FullGuide(t.provider.Base())), nil
}
