package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestTopicsTool_Definition(t *testing.T) {
	tool := NewTopicsTool(newTestProvider(t))
	def := tool.Definition()

	if def.Name != "list_topics" {
		t.Errorf("name = %q, want list_topics", def.Name)
	}
}

func TestTopicsTool_Handle_AllSections(t *testing.T) {
	tool := NewTopicsTool(newTestProvider(t))

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Data Structures & Keys") {
		t.Error("result should list the data section")
	}
	if !strings.Contains(text, "Connection & Performance") {
		t.Error("result should list the conn section")
	}
	if !strings.Contains(text, "`conn-pooling`") {
		t.Error("result should list rule identifiers")
	}
}

func TestTopicsTool_Handle_CategoryFilter(t *testing.T) {
	tool := NewTopicsTool(newTestProvider(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"category": "connection",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.Contains(text, "Connection & Performance") {
		t.Error("filtered result should keep the requested category")
	}
	if strings.Contains(text, "Data Structures") {
		t.Error("filtered result should drop other categories")
	}
}
