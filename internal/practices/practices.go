// Package practices formats knowledge-base query results into the
// display text returned by the MCP tools. Pure string assembly on top
// of the knowledge package: the only logic here is normalizing
// caller-supplied topics before delegating, and building guidance text
// when a query comes back empty.
package practices

import (
	"fmt"
	"strings"

	"github.com/redisguide/redisguide/internal/knowledge"
)

// searchResultLimit caps how many ranked hits search output includes.
const searchResultLimit = 5

// BestPractice returns the full markdown for one topic. An unknown
// topic falls back to the best search hit; when nothing matches at all,
// the response lists every available identifier.
func BestPractice(base *knowledge.Base, topic string) string {
	normalized := knowledge.NormalizeTopic(topic)

	if rule, ok := base.RuleByIdentifier(normalized); ok {
		return rule.Markdown()
	}

	if matches := base.Search(topic); len(matches) > 0 {
		return matches[0].Markdown()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic '%s' not found.\n\nAvailable topics:\n", topic)
	for _, id := range base.Identifiers() {
		fmt.Fprintf(&sb, "  - %s\n", id)
	}
	sb.WriteString("\nTip: Use 'search_best_practices' to search by keyword, or 'list_topics' to browse by category.")
	return sb.String()
}

// Topics lists sections and their rules, optionally filtered by
// category. An unknown category yields an empty listing, not an error.
func Topics(base *knowledge.Base, category string) string {
	sections := base.Sections(strings.TrimSpace(category))

	var sb strings.Builder
	sb.WriteString("# Redis Best Practices Topics\n")

	for _, section := range sections {
		fmt.Fprintf(&sb, "\n## %d. %s (%s %s)\n", section.Number, section.Name, impactBadge(section.Impact), section.Impact)
		fmt.Fprintf(&sb, "*%s*\n\n", section.Description)
		for _, rule := range section.Rules {
			fmt.Fprintf(&sb, "  - `%s` - %s\n", rule.Identifier, rule.Title)
		}
	}

	return sb.String()
}

// SearchPractices runs a ranked search and formats the top hits. A
// blank query gets a guidance message rather than every rule.
func SearchPractices(base *knowledge.Base, query string) string {
	if strings.TrimSpace(query) == "" {
		return "Please provide a search query."
	}

	matches := base.Search(query)
	if len(matches) == 0 {
		return fmt.Sprintf(`No results found for '%s'.

Try:
- Different keywords (e.g., 'cache' instead of 'caching')
- Broader terms (e.g., 'memory' instead of 'maxmemory')
- Use 'list_topics' to browse available topics`, query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Search Results for '%s'\n\n", query)
	fmt.Fprintf(&sb, "Found %d matching practice(s):\n\n", len(matches))

	for i, rule := range matches {
		if i == searchResultLimit {
			break
		}
		fmt.Fprintf(&sb, "## %d. %s\n", i+1, rule.Title)
		fmt.Fprintf(&sb, "**Impact:** %s - %s\n", rule.Impact, rule.ImpactDescription)
		fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(rule.Tags, ", "))
		sb.WriteString(rule.Summary)
		fmt.Fprintf(&sb, "\n\n*Use `get_best_practice('%s')` for full details.*\n\n---\n\n", rule.Identifier)
	}

	return sb.String()
}

// AntiPatterns formats the extracted anti-patterns grouped by category.
func AntiPatterns(base *knowledge.Base, topic string) string {
	groups := base.AntiPatterns(strings.TrimSpace(topic))

	var sb strings.Builder
	sb.WriteString("# Redis Anti-Patterns to Avoid\n")

	if topic != "" {
		fmt.Fprintf(&sb, "\n*Filtered by: %s*\n", topic)
	}

	for _, group := range groups {
		fmt.Fprintf(&sb, "\n## %s\n\n", group.Category)
		for _, p := range group.Patterns {
			fmt.Fprintf(&sb, "### ❌ %s\n", p.Title)
			fmt.Fprintf(&sb, "**Why it's bad:** %s\n\n", p.Reason)
			fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", p.Language, p.BadCode)
			sb.WriteString("**Instead, do this:**\n\n")
			fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", p.Language, p.GoodCode)
		}
	}

	return sb.String()
}

// CodeExample formats a code example for a pattern in the requested
// language. When the rule only had code in another language, the
// example's actual language is used for the fence and a fallback note
// is added so the substitution is visible.
func CodeExample(base *knowledge.Base, pattern, language string) string {
	example, ok := base.CodeExample(pattern, language)
	if !ok {
		var sb strings.Builder
		fmt.Fprintf(&sb, "No code example found for pattern '%s' in %s.\n\nAvailable patterns:\n", pattern, language)
		for _, p := range knowledge.CodeExamplePatterns() {
			fmt.Fprintf(&sb, "  - %s\n", p)
		}
		sb.WriteString("\nAvailable languages: python, javascript, java")
		return sb.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", example.Title)
	fmt.Fprintf(&sb, "**Pattern:** %s\n", pattern)
	fmt.Fprintf(&sb, "**Language:** %s\n\n", example.Language)
	if example.Language != language {
		fmt.Fprintf(&sb, "*No %s example is available for this pattern; showing the %s version.*\n\n", language, example.Language)
	}
	sb.WriteString(example.Description)
	fmt.Fprintf(&sb, "\n\n```%s\n%s\n```\n", example.Language, example.Code)

	if len(example.Notes) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, note := range example.Notes {
			fmt.Fprintf(&sb, "- %s\n", note)
		}
	}

	if len(example.References) > 0 {
		sb.WriteString("\n## References\n\n")
		for _, ref := range example.References {
			fmt.Fprintf(&sb, "- [%s](%s)\n", ref.Title, ref.URL)
		}
	}

	return sb.String()
}

// FullGuide returns the complete guide text.
func FullGuide(base *knowledge.Base) string {
	return base.FullGuide()
}

func impactBadge(impact string) string {
	switch impact {
	case "HIGH":
		return "🔴"
	case "MEDIUM":
		return "🟡"
	default:
		return "🟢"
	}
}
