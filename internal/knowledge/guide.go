package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// guideHeader opens the synthesized guide. Static text only — synthesis
// must be byte-identical for the same corpus.
const guideHeader = `# Redis Development Best Practices

**Version 0.1.0**
Redis Best Practices Knowledge Server

> **Note:**
> This document is optimized for AI agents and LLMs to follow when
> generating or refactoring Redis applications.

---

## Abstract

Best practices for Redis including data structures, memory management,
connection handling, security, and performance optimization.

---

## Table of Contents
`

// synthesizeGuide builds the full guide from the loaded corpus: a table
// of contents followed by every rule body, sections in number order and
// rules alphabetical by title within each section.
func (b *Base) synthesizeGuide() string {
	var sb strings.Builder
	sb.WriteString(guideHeader)
	sb.WriteString("\n")

	for _, section := range b.sections {
		fmt.Fprintf(&sb, "%d. [%s](%s) — **%s**\n",
			section.Number, section.Name, sectionAnchor(section.Number, section.Name), section.Impact)
		for _, rule := range sortedByTitle(section.Rules) {
			fmt.Fprintf(&sb, "   - [%s](#%s)\n", rule.Title, anchor(rule.Title))
		}
	}

	sb.WriteString("\n---\n\n")

	for _, section := range b.sections {
		fmt.Fprintf(&sb, "## %d. %s\n\n", section.Number, section.Name)
		fmt.Fprintf(&sb, "**Impact:** %s\n\n", section.Impact)
		fmt.Fprintf(&sb, "*%s*\n\n", section.Description)

		for _, rule := range sortedByTitle(section.Rules) {
			fmt.Fprintf(&sb, "### %s\n\n", rule.Title)
			fmt.Fprintf(&sb, "**Impact: %s** (%s)\n\n", rule.Impact, rule.ImpactDescription)
			sb.WriteString(rule.Content)
			sb.WriteString("\n\n---\n\n")
		}
	}

	return sb.String()
}

func sortedByTitle(rules []*Rule) []*Rule {
	sorted := append([]*Rule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}
