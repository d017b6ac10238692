package tools

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redisguide/redisguide/internal/knowledge"
)

// --- Test helpers ---

// md converts ~~~ fences into real backtick fences so test documents
// can live inside raw string literals.
func md(s string) []byte {
	return []byte(strings.ReplaceAll(s, "~~~", "```"))
}

// newTestProvider loads a small fixed corpus and wraps it in the
// Provider the tools expect.
func newTestProvider(t *testing.T) knowledge.Provider {
	t.Helper()

	fsys := fstest.MapFS{
		"rules/_sections.md": {Data: md(`## 1. Data Structures & Keys (data)
**Impact:** HIGH
**Description:** Key naming and structure selection.

## 3. Connection & Performance (conn)
**Impact:** HIGH
**Description:** Pooling, pipelining, and client configuration.
`)},
		"rules/conn-pooling.md": {Data: md(`---
title: Use Connection Pooling
impact: HIGH
impactDescription: Connection churn exhausts server resources
tags: connections, pooling, performance
---

## Connection Pooling

Reuse a pool of connections instead of opening one per operation.

**Incorrect:** New connection per request

~~~python
r = redis.Redis()
~~~

**Correct:** Shared pool

~~~python
pool = redis.ConnectionPool(max_connections=50)
~~~
`)},
		"rules/data-key-naming.md": {Data: md(`---
title: Key Naming Conventions
impact: HIGH
impactDescription: Inconsistent keys make data impossible to manage
tags: keys, naming
---

## Key Naming

Use colon-delimited hierarchical key names.

**Incorrect:** Ad-hoc names

~~~python
r.set("johnsmith", data)
~~~

**Correct:** Hierarchical names

~~~python
r.set("user:1000:profile", data)
~~~
`)},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base, err := knowledge.Load(fsys, knowledge.WithLogger(logger))
	if err != nil {
		t.Fatalf("loading test corpus: %v", err)
	}
	return knowledge.NewStatic(base)
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
