package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestAntiPatternsTool_Definition(t *testing.T) {
	tool := NewAntiPatternsTool(newTestProvider(t))
	def := tool.Definition()

	if def.Name != "get_anti_patterns" {
		t.Errorf("name = %q, want get_anti_patterns", def.Name)
	}
}

func TestAntiPatternsTool_Handle_All(t *testing.T) {
	tool := NewAntiPatternsTool(newTestProvider(t))

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Redis Anti-Patterns to Avoid") {
		t.Error("result should carry the heading")
	}
	if !strings.Contains(text, "❌ New connection per request") {
		t.Error("result should include the extracted anti-pattern")
	}
	if !strings.Contains(text, "Instead, do this:") {
		t.Error("result should include the correction")
	}
}

func TestAntiPatternsTool_Handle_TopicFilter(t *testing.T) {
	tool := NewAntiPatternsTool(newTestProvider(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"topic": "keys",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.Contains(text, "Filtered by: keys") {
		t.Error("result should note the topic filter")
	}
	if !strings.Contains(text, "Ad-hoc names") {
		t.Error("result should keep the matching rule's anti-pattern")
	}
	if strings.Contains(text, "New connection per request") {
		t.Error("result should drop non-matching rules")
	}
}
