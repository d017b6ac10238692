package knowledge

import (
	"fmt"
	"regexp"
	"strings"
)

// Labeled code block extraction for anti-patterns. Each labeled block is
// a bold "Incorrect"/"Correct" marker, an optional trailing title on the
// same line, and a fenced code block with a language tag.
var (
	incorrectBlockRe = regexp.MustCompile(`(?s)\*\*Incorrect[^*]*\*\*[:\s]*([^\n]*)\n+` + "```" + `(\w+)\n(.*?)` + "```")
	correctBlockRe   = regexp.MustCompile(`(?s)\*\*Correct[^*]*\*\*[:\s]*([^\n]*)\n+` + "```" + `(\w+)\n(.*?)` + "```")

	// anyFenceRe matches the first fenced code block of any language.
	anyFenceRe = regexp.MustCompile(`(?s)` + "```" + `(\w*)\n(.*?)` + "```")

	// referenceRe matches "Reference: [title](url)" lines.
	referenceRe = regexp.MustCompile(`Reference:\s*\[([^\]]+)\]\(([^)]+)\)`)
)

// labeledBlock is one matched Incorrect/Correct block.
type labeledBlock struct {
	title    string
	language string
	code     string
}

func findLabeledBlocks(re *regexp.Regexp, content string) []labeledBlock {
	var blocks []labeledBlock
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, labeledBlock{
			title:    strings.TrimSpace(m[1]),
			language: m[2],
			code:     strings.TrimSpace(m[3]),
		})
	}
	return blocks
}

// findCodeBlock returns the first fenced block tagged with language, or
// ok=false when none exists.
func findCodeBlock(content, language string) (code string, ok bool) {
	re, err := regexp.Compile(`(?s)` + "```" + regexp.QuoteMeta(language) + `\n(.*?)` + "```")
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// findAnyCodeBlock returns the first fenced block regardless of
// language, along with its language tag (possibly empty).
func findAnyCodeBlock(content string) (code, language string, ok bool) {
	m := anyFenceRe.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[2]), m[1], true
}

// findReferences extracts all "Reference: [title](url)" links in
// document order.
func findReferences(content string) []Reference {
	var refs []Reference
	for _, m := range referenceRe.FindAllStringSubmatch(content, -1) {
		refs = append(refs, Reference{Title: m[1], URL: m[2]})
	}
	return refs
}

// anchor converts a heading into its markdown anchor form, used when
// synthesizing the full guide's table of contents.
func anchor(heading string) string {
	return strings.ReplaceAll(strings.ToLower(heading), " ", "-")
}

// sectionAnchor builds the TOC anchor for a numbered section heading.
func sectionAnchor(number int, name string) string {
	return fmt.Sprintf("#%d-%s", number, anchor(name))
}
