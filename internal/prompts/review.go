// Package prompts implements MCP prompt handlers for the knowledge
// server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the redis-review MCP prompt. It steers the AI
// through a best-practices review of the Redis usage in the current
// codebase, leaning on the knowledge tools for each finding.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("redis-review",
		mcp.WithPromptDescription(
			"Review the Redis usage in this codebase against the best "+
				"practices knowledge base: data structure choices, key naming, "+
				"connection handling, memory management, and security.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription(
				"Optional area to focus on: 'data', 'connection', 'memory', "+
					"'security', 'json', 'streams', 'clustering', 'vector', "+
					"'semantic-cache', or 'observability'. Default: everything.",
			),
		),
	)
}

// Handle processes the redis-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := ""
	if args := req.Params.Arguments; args != nil {
		focus = args["focus"]
	}

	scope := "all categories"
	topicsCall := "1. Call `list_topics` to see every category\n"
	if focus != "" {
		scope = fmt.Sprintf("the '%s' category", focus)
		topicsCall = fmt.Sprintf("1. Call `list_topics` with category='%s'\n", focus)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Redis best-practices review (%s)", scope),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please review the Redis usage in this codebase against %s of the best practices knowledge base.\n\n"+
						"Work through it like this:\n"+
						"%s"+
						"2. Call `get_anti_patterns` and scan the code for each listed mistake\n"+
						"3. For every area the code touches, call `get_best_practice` with that topic and compare\n"+
						"4. Where the code deviates, show the incorrect pattern found, the recommended pattern "+
						"(use `get_code_example` for a concrete snippet), and the expected impact\n"+
						"5. Finish with a prioritized list of findings, HIGH impact first",
					scope, topicsCall,
				)),
			},
		},
	}, nil
}
