// Package tools implements the MCP tool handlers for the knowledge
// server.
//
// Each tool is a struct that receives its dependencies on construction
// (DIP) and exposes a Definition for registration plus a Handle
// compatible with mcp-go's CallToolRequest signature. One file per
// tool. Tools hold no state of their own: they parse arguments, call
// the practices façade against the provider's current Base, and wrap
// the resulting text.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
	"github.com/redisguide/redisguide/internal/practices"
)

// BestPracticeTool handles the get_best_practice MCP tool.
type BestPracticeTool struct {
	provider knowledge.Provider
}

// NewBestPracticeTool creates a BestPracticeTool with its dependencies.
func NewBestPracticeTool(provider knowledge.Provider) *BestPracticeTool {
	return &BestPracticeTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *BestPracticeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_best_practice",
		mcp.WithDescription(
			"Get Redis best practices for a specific topic. "+
				"Returns detailed guidance including why the practice matters, "+
				"correct code examples with explanations, incorrect patterns to avoid, "+
				"performance impact, and links to official Redis documentation. "+
				"Use this for specific guidance on topics like key naming conventions, "+
				"data structure selection, connection pooling, pipelining, "+
				"memory management, or security configuration.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description(
				"The topic to get best practices for. Examples: 'key-naming', "+
					"'data-structures', 'connection-pooling', 'pipelining', 'memory', "+
					"'ttl', 'security', 'json', 'streams', 'pub-sub', 'clustering', "+
					"'vector-search', 'semantic-cache'",
			),
		),
	)
}

// Handle processes the get_best_practice tool call.
func (t *BestPracticeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("topic is required"), nil
	}

	return mcp.NewToolResultText(practices.BestPractice(t.provider.Base(), topic)), nil
}
