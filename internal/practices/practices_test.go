package practices

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/redisguide/redisguide/internal/knowledge"
)

// --- Test helpers ---

// md converts ~~~ fences into real backtick fences so test documents
// can live inside raw string literals.
func md(s string) []byte {
	return []byte(strings.ReplaceAll(s, "~~~", "```"))
}

func testBase(t *testing.T) *knowledge.Base {
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

	base, err := knowledge.Load(fsys, knowledge.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("loading test corpus: %v", err)
	}
	return base
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- BestPractice ---

func TestBestPractice_ExactTopic(t *testing.T) {
	base := testBase(t)

	text := BestPractice(base, "conn-pooling")
	if !strings.HasPrefix(text, "# Use Connection Pooling") {
		t.Error("response should open with the rule title")
	}
	if !strings.Contains(text, "**Impact:** HIGH") {
		t.Error("response should include the impact line")
	}
}

func TestBestPractice_NormalizesAndRetriesPrefixes(t *testing.T) {
	base := testBase(t)

	// "Key Naming" normalizes to key-naming, which resolves via the
	// data- prefix retry.
	text := BestPractice(base, "Key Naming")
	if !strings.Contains(text, "Key Naming Conventions") {
		t.Errorf("response = %q, want the key naming rule", text)
	}
}

func TestBestPractice_SearchFallback(t *testing.T) {
	base := testBase(t)

	// Not an identifier, but a searchable word: best hit wins.
	text := BestPractice(base, "pooling performance")
	if !strings.Contains(text, "Use Connection Pooling") {
		t.Errorf("response = %q, want the search fallback hit", text)
	}
}

func TestBestPractice_NotFoundListsTopics(t *testing.T) {
	base := testBase(t)

	text := BestPractice(base, "quantum-entanglement")
	if !strings.Contains(text, "Topic 'quantum-entanglement' not found.") {
		t.Error("missing not-found line")
	}
	if !strings.Contains(text, "- conn-pooling") || !strings.Contains(text, "- data-key-naming") {
		t.Error("not-found response should list every available identifier")
	}
	if !strings.Contains(text, "search_best_practices") {
		t.Error("not-found response should point at the search tool")
	}
}

// --- Topics ---

func TestTopics_ListsSectionsWithBadges(t *testing.T) {
	base := testBase(t)

	text := Topics(base, "")
	if !strings.Contains(text, "# Redis Best Practices Topics") {
		t.Error("missing heading")
	}
	if !strings.Contains(text, "## 1. Data Structures & Keys (🔴 HIGH)") {
		t.Error("missing section line with impact badge")
	}
	if !strings.Contains(text, "`conn-pooling` - Use Connection Pooling") {
		t.Error("missing rule line under its section")
	}
}

func TestTopics_CategoryFilter(t *testing.T) {
	base := testBase(t)

	text := Topics(base, "connection")
	if !strings.Contains(text, "Connection & Performance") {
		t.Error("connection category should show the conn section")
	}
	if strings.Contains(text, "Data Structures") {
		t.Error("connection category should filter out other sections")
	}

	// Unknown category: empty listing, never an error.
	text = Topics(base, "bogus")
	if strings.Contains(text, "##") {
		t.Errorf("unknown category should list no sections, got %q", text)
	}
}

// --- SearchPractices ---

func TestSearchPractices_BlankQuery(t *testing.T) {
	base := testBase(t)

	for _, q := range []string{"", "   "} {
		if got := SearchPractices(base, q); got != "Please provide a search query." {
			t.Errorf("SearchPractices(%q) = %q", q, got)
		}
	}
}

func TestSearchPractices_NoResultsGuidance(t *testing.T) {
	base := testBase(t)

	text := SearchPractices(base, "zanzibar")
	if !strings.Contains(text, "No results found for 'zanzibar'.") {
		t.Error("missing no-results line")
	}
	if !strings.Contains(text, "list_topics") {
		t.Error("guidance should mention list_topics")
	}
}

func TestSearchPractices_FormatsHits(t *testing.T) {
	base := testBase(t)

	text := SearchPractices(base, "pooling")
	if !strings.Contains(text, "# Search Results for 'pooling'") {
		t.Error("missing results heading")
	}
	if !strings.Contains(text, "## 1. Use Connection Pooling") {
		t.Error("missing ranked hit")
	}
	if !strings.Contains(text, "get_best_practice('conn-pooling')") {
		t.Error("hit should include the follow-up tool call hint")
	}
}

func TestSearchPractices_CapsResults(t *testing.T) {
	fsys := fstest.MapFS{}
	for i := 1; i <= 8; i++ {
		doc := fmt.Sprintf(`---
title: Widget Rule %d
impact: LOW
tags: widget
---

## Widget %d

Widget guidance number %d.
`, i, i, i)
		fsys[fmt.Sprintf("rules/data-widget-%d.md", i)] = &fstest.MapFile{Data: []byte(doc)}
	}

	base, err := knowledge.Load(fsys, knowledge.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	text := SearchPractices(base, "widget")
	if !strings.Contains(text, "Found 8 matching practice(s)") {
		t.Error("total should count every match")
	}
	if !strings.Contains(text, "## 5. ") {
		t.Error("fifth hit should be rendered")
	}
	if strings.Contains(text, "## 6. ") {
		t.Error("output must stop at five rendered hits")
	}
}

// --- AntiPatterns ---

func TestAntiPatterns_Formatting(t *testing.T) {
	base := testBase(t)

	text := AntiPatterns(base, "")
	if !strings.Contains(text, "# Redis Anti-Patterns to Avoid") {
		t.Error("missing heading")
	}
	if !strings.Contains(text, "### ❌ New connection per request") {
		t.Error("missing anti-pattern title")
	}
	if !strings.Contains(text, "**Why it's bad:** Connection churn exhausts server resources") {
		t.Error("missing reason line")
	}
	if !strings.Contains(text, "**Instead, do this:**") {
		t.Error("missing correction label")
	}
	if !strings.Contains(text, "max_connections=50") {
		t.Error("missing correct code block")
	}
}

func TestAntiPatterns_TopicNote(t *testing.T) {
	base := testBase(t)

	text := AntiPatterns(base, "keys")
	if !strings.Contains(text, "*Filtered by: keys*") {
		t.Error("filtered output should note the topic")
	}
	if strings.Contains(text, "Connection") {
		t.Error("filter should drop non-matching rules")
	}
}

// --- CodeExample ---

func TestCodeExample_RendersRequestedLanguage(t *testing.T) {
	base := testBase(t)

	text := CodeExample(base, "connection-pool", "python")
	if !strings.Contains(text, "# Use Connection Pooling") {
		t.Error("missing title")
	}
	if !strings.Contains(text, "**Language:** python") {
		t.Error("missing language line")
	}
	if strings.Contains(text, "showing the") {
		t.Error("no fallback note expected when the language matched")
	}
}

func TestCodeExample_FallbackNote(t *testing.T) {
	base := testBase(t)

	// The corpus has no java block, so the python one is substituted
	// and the substitution is called out.
	text := CodeExample(base, "key-naming", "java")
	if !strings.Contains(text, "**Language:** python") {
		t.Error("fallback should report the actual language")
	}
	if !strings.Contains(text, "*No java example is available for this pattern; showing the python version.*") {
		t.Error("missing fallback note")
	}
	if !strings.Contains(text, "```python\n") {
		t.Error("fence should carry the actual language")
	}
}

func TestCodeExample_NotFoundGuidance(t *testing.T) {
	base := testBase(t)

	text := CodeExample(base, "warp-drive", "python")
	if !strings.Contains(text, "No code example found for pattern 'warp-drive' in python.") {
		t.Error("missing not-found line")
	}
	if !strings.Contains(text, "- connection-pool") {
		t.Error("guidance should list the advertised patterns")
	}
	if !strings.Contains(text, "Available languages: python, javascript, java") {
		t.Error("guidance should list the supported languages")
	}
}

// --- FullGuide ---

func TestFullGuide_Stable(t *testing.T) {
	base := testBase(t)

	guide := FullGuide(base)
	if !strings.Contains(guide, "# Redis Development Best Practices") {
		t.Error("missing guide header")
	}
	if guide != FullGuide(base) {
		t.Error("guide text must be identical across calls")
	}
}
