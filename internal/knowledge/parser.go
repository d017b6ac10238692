package knowledge

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterDelim marks the start and end of the metadata block.
const frontmatterDelim = "---"

// summaryRe captures the first non-empty, non-heading line that follows
// a "##" heading — the rule's one-paragraph summary.
var summaryRe = regexp.MustCompile(`##[^\n]+\n+([^\n#]+)`)

// ParseRule converts one document into a Rule. A document that is not a
// valid rule (no frontmatter, unparseable metadata, or missing the
// required title/impact fields) yields a skip error describing the
// reason; the caller logs it and continues loading the rest of the
// corpus. ParseRule never panics and has no side effects.
func ParseRule(identifier string, raw []byte) (*Rule, error) {
	meta, body, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", identifier, err)
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(meta), &fields); err != nil {
		return nil, fmt.Errorf("rule %s: parsing frontmatter: %w", identifier, err)
	}

	title := stringField(fields, "title")
	impact := stringField(fields, "impact")
	if title == "" {
		return nil, fmt.Errorf("rule %s: missing required field %q", identifier, "title")
	}
	if impact == "" {
		return nil, fmt.Errorf("rule %s: missing required field %q", identifier, "impact")
	}

	rule := &Rule{
		Identifier:        identifier,
		Title:             title,
		Impact:            impact,
		ImpactDescription: stringField(fields, "impactDescription"),
		Tags:              splitTags(stringField(fields, "tags")),
		Content:           body,
	}

	if m := summaryRe.FindStringSubmatch(body); m != nil {
		rule.Summary = strings.TrimSpace(m[1])
	}

	return rule, nil
}

// splitFrontmatter separates the leading metadata block from the body.
// The document must start with the delimiter on its own line and contain
// a closing delimiter; everything after the closing delimiter (and its
// trailing blank lines) is the body, stored verbatim.
func splitFrontmatter(content string) (meta, body string, err error) {
	if !strings.HasPrefix(content, frontmatterDelim+"\n") && !strings.HasPrefix(content, frontmatterDelim+"\r\n") {
		return "", "", fmt.Errorf("no frontmatter block")
	}

	start := len(frontmatterDelim)
	if content[start] == '\r' {
		start++
	}
	start++ // the newline itself

	closeIdx := strings.Index(content[start:], "\n"+frontmatterDelim)
	if closeIdx == -1 {
		return "", "", fmt.Errorf("unterminated frontmatter block")
	}

	meta = content[start : start+closeIdx]

	bodyStart := start + closeIdx + 1 + len(frontmatterDelim)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}
	return meta, body, nil
}

// stringField extracts a frontmatter field as a trimmed string,
// tolerating non-string scalars (e.g. an unquoted numeric impact).
func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// splitTags turns the comma-separated tags field into a trimmed list.
// An absent or empty field yields no tags.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
