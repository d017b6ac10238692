// Package knowledge loads, indexes, and queries the Redis best-practices
// corpus. The corpus is a set of markdown rule documents with YAML
// frontmatter plus a sections registry document; it is read once at
// construction and immutable afterwards, so every query is a lock-free
// read over in-memory indexes.
package knowledge

import (
	"fmt"
	"strings"
)

// Rule is a single best-practice document.
type Rule struct {
	// Identifier is the unique lookup key, derived from the document's
	// file name (without extension). Conventionally prefixed with the
	// owning section's prefix token, e.g. "conn-pooling".
	Identifier string

	// Title is the human-readable name from the frontmatter.
	Title string

	// Impact is the severity classification: HIGH, MEDIUM, or LOW.
	Impact string

	// ImpactDescription is an optional short rationale for the impact.
	ImpactDescription string

	// Tags are the comma-separated frontmatter tags, trimmed, in
	// document order.
	Tags []string

	// Content is the full markdown body, verbatim.
	Content string

	// Summary is the first descriptive paragraph after the first
	// heading, used in search result previews. Empty when the body has
	// no such line.
	Summary string

	// SectionNumber is the ordinal of the section this rule was
	// assigned to at load time. Zero when the rule is ungrouped.
	SectionNumber int
}

// Markdown renders the rule as a standalone markdown document with its
// metadata header followed by the full body.
func (r *Rule) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	fmt.Fprintf(&sb, "**Impact:** %s (%s)\n\n", r.Impact, r.ImpactDescription)
	fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(r.Tags, ", "))
	sb.WriteString("---\n\n")
	sb.WriteString(r.Content)
	return sb.String()
}

// Section is a named category of rules.
type Section struct {
	// Number is the display ordering key, unique per corpus.
	Number int

	// Name is the human-readable category name.
	Name string

	// Prefix is the identifier-prefix token that assigns rules to this
	// section. May contain hyphens ("semantic-cache").
	Prefix string

	// Impact and Description are category-level metadata.
	Impact      string
	Description string

	// Rules holds the section's rules in load order. Populated during
	// Base construction; the Base owns the rules, this is a view.
	Rules []*Rule
}

// AntiPattern is one paired (incorrect, correct) code example extracted
// from a rule body.
type AntiPattern struct {
	Title    string
	Reason   string
	BadCode  string
	GoodCode string
	Language string
	Category string
}

// Reference is a documentation link extracted from a rule body.
type Reference struct {
	Title string
	URL   string
}

// CodeExample is a runnable snippet extracted from a rule.
type CodeExample struct {
	Title       string
	Description string
	Code        string

	// Language is the language tag of the returned code block. When the
	// requested language had no block and another language was
	// substituted, this reports the actual language, not the request.
	Language string

	Notes      []string
	References []Reference
}
