package knowledge

import "testing"

func TestParseSections(t *testing.T) {
	content := `# Redis Best Practices Sections

## 1. Data Structures & Keys (data)
**Impact:** HIGH
**Description:** Key naming and structure selection.

## 7. Semantic Caching (semantic-cache)
**Impact:** MEDIUM
**Description:** Caching LLM responses by meaning.
`

	sections := parseSections(content)
	if len(sections) != 2 {
		t.Fatalf("parsed %d sections, want 2", len(sections))
	}

	first := sections[0]
	if first.Number != 1 {
		t.Errorf("number = %d, want 1", first.Number)
	}
	if first.Name != "Data Structures & Keys" {
		t.Errorf("name = %q", first.Name)
	}
	if first.Prefix != "data" {
		t.Errorf("prefix = %q", first.Prefix)
	}
	if first.Impact != "HIGH" {
		t.Errorf("impact = %q", first.Impact)
	}
	if first.Description != "Key naming and structure selection." {
		t.Errorf("description = %q", first.Description)
	}

	// Prefix tokens may contain hyphens.
	if sections[1].Prefix != "semantic-cache" {
		t.Errorf("hyphenated prefix = %q, want semantic-cache", sections[1].Prefix)
	}
}

func TestParseSections_MalformedEntriesIgnored(t *testing.T) {
	content := `## 2. Valid Section (ram)
**Impact:** HIGH
**Description:** Memory and expiration.

## Missing Number (conn)
**Impact:** HIGH
**Description:** Never parsed.

## 4. Missing Description (json)
**Impact:** MEDIUM
`

	sections := parseSections(content)
	if len(sections) != 1 {
		t.Fatalf("parsed %d sections, want only the valid one", len(sections))
	}
	if sections[0].Prefix != "ram" {
		t.Errorf("prefix = %q, want ram", sections[0].Prefix)
	}
}

func TestParseSections_EmptyDocument(t *testing.T) {
	if got := parseSections(""); len(got) != 0 {
		t.Errorf("parseSections(empty) = %d sections, want 0", len(got))
	}
	if got := parseSections("# Just a title\n\nProse only.\n"); len(got) != 0 {
		t.Errorf("parseSections(prose) = %d sections, want 0", len(got))
	}
}
