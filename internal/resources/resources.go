// Package resources implements MCP resource handlers for the knowledge
// server.
//
// Resources provide read-only data the host can pull into context. They
// use URI-based addressing (guide://...) following MCP conventions.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
)

// Handler manages the knowledge resource endpoints.
type Handler struct {
	provider knowledge.Provider
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(provider knowledge.Provider) *Handler {
	return &Handler{provider: provider}
}

// GuideResource returns the MCP resource definition for the full guide.
func (h *Handler) GuideResource() mcp.Resource {
	return mcp.NewResource(
		"guide://redis/full",
		"Redis Best Practices Guide",
		mcp.WithResourceDescription("The complete Redis best practices guide, all rules across all categories"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// HandleGuide returns the full guide text.
func (h *Handler) HandleGuide(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     h.provider.Base().FullGuide(),
		},
	}, nil
}
