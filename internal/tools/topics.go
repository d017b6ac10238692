package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// TopicsTool handles the list_topics MCP tool.
type TopicsTool struct {
	provider knowledge.Provider
}

// NewTopicsTool creates a TopicsTool with its dependencies.
func NewTopicsTool(provider knowledge.Provider) *TopicsTool {
	return &TopicsTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *TopicsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_topics",
		mcp.WithDescription(
			"List all available Redis best practice topics, organized by "+
				"category and impact level (HIGH: data structures, connections, "+
				"memory, security, query engine, vector search; MEDIUM: JSON, "+
				"streams, clustering, semantic caching, observability). "+
				"Optionally filter by category to see only relevant topics.",
		),
		mcp.WithString("category",
			mcp.Description(
				"Optional category filter. One of: 'data', 'connection', 'memory', "+
					"'security', 'json', 'streams', 'clustering', 'vector', "+
					"'semantic-cache', 'observability'",
			),
			mcp.Enum("data", "connection", "memory", "security", "json",
				"streams", "clustering", "vector", "semantic-cache", "observability"),
		),
	)
}

// Handle processes the list_topics tool call.
func (t *TopicsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	return mcp.NewToolResultText(practices.Topics(t.provider.Base(), category)), nil
}
