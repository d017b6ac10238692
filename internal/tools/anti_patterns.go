package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// AntiPatternsTool handles the get_anti_patterns MCP tool.
type AntiPatternsTool struct {
	provider knowledge.Provider
}

// NewAntiPatternsTool creates an AntiPatternsTool with its dependencies.
func NewAntiPatternsTool(provider knowledge.Provider) *AntiPatternsTool {
	return &AntiPatternsTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *AntiPatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_anti_patterns",
		mcp.WithDescription(
			"Get common Redis anti-patterns and mistakes to avoid, organized "+
				"by category: blocking commands in production (KEYS *, SMEMBERS "+
				"on large sets), missing key expiration leading to memory bloat, "+
				"connection leaks from not using pools, big keys that cause "+
				"latency spikes, and inefficient data structure choices. "+
				"Optionally filter by topic.",
		),
		mcp.WithString("topic",
			mcp.Description(
				"Optional topic filter for anti-patterns. Examples: 'commands', "+
					"'memory', 'connections', 'data-structures', 'security'",
			),
		),
	)
}

// Handle processes the get_anti_patterns tool call.
func (t *AntiPatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	return mcp.NewToolResultText(practices.AntiPatterns(t.provider.Base(), topic)), nil
}
