package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// CodeExampleTool handles the get_code_example MCP tool.
type CodeExampleTool struct {
	provider knowledge.Provider
}

// NewCodeExampleTool creates a CodeExampleTool with its dependencies.
func NewCodeExampleTool(provider knowledge.Provider) *CodeExampleTool {
	return &CodeExampleTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *CodeExampleTool) Definition() mcp.Tool {
	return mcp.NewTool("get_code_example",
		mcp.WithDescription(
			"Get working code examples for a specific Redis pattern: complete, "+
				"runnable snippets with comments, error handling, and "+
				"configuration options. Supports Python (redis-py), "+
				"Node.js (ioredis), and Java (Jedis/Lettuce).",
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description(
				"The pattern to get code for. Examples: 'connection-pool', "+
					"'pipeline', 'transaction', 'pub-sub', 'stream-consumer', "+
					"'rate-limiter', 'cache-aside', 'session-store', 'leaderboard', "+
					"'vector-search'",
			),
		),
		mcp.WithString("language",
			mcp.Description("Programming language for the example"),
			mcp.Enum("python", "javascript", "java"),
			mcp.DefaultString("python"),
		),
	)
}

// Handle processes the get_code_example tool call.
func (t *CodeExampleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := req.GetString("pattern", "")
	if pattern == "" {
		return mcp.NewToolResultError("pattern is required"), nil
	}
	language := req.GetString("language", "python")

	return mcp.NewToolResultText(practices.CodeExample(t.provider.Base(), pattern, language)), nil
}
