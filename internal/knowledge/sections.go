package knowledge

import (
	"regexp"
	"strconv"
	"strings"
)

// sectionsName is the reserved file inside the rules directory that
// defines the section registry. Files starting with "_" are never
// loaded as rules.
const sectionsName = "_sections.md"

// sectionRe recognizes one registry entry:
//
//	## 3. Connection & Performance (conn)
//	**Impact:** HIGH
//	**Description:** Pooling, pipelining, and client configuration.
//
// The prefix token may contain hyphens ("semantic-cache").
var sectionRe = regexp.MustCompile(`## (\d+)\. ([^(]+)\(([\w-]+)\)\s*\n\*\*Impact:\*\* (\w+)\s*\n\*\*Description:\*\* (.+)`)

// parseSections extracts all section entries from the registry document.
// A malformed document simply produces fewer (or zero) sections — the
// loader treats a missing registry the same way, so rules fall back to
// their own identifier-derived prefixes.
func parseSections(content string) []*Section {
	var sections []*Section
	for _, m := range sectionRe.FindAllStringSubmatch(content, -1) {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sections = append(sections, &Section{
			Number:      number,
			Name:        strings.TrimSpace(m[2]),
			Prefix:      strings.TrimSpace(m[3]),
			Impact:      strings.TrimSpace(m[4]),
			Description: strings.TrimSpace(m[5]),
		})
	}
	return sections
}
