package knowledge

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// guideName is the optional pre-built aggregate guide at the corpus
// root. When present it is served verbatim by FullGuide; otherwise the
// guide is synthesized from the loaded rules.
const guideName = "AGENTS.md"

// knownPrefixes are the section prefix tokens tried when a caller looks
// up a bare suffix ("pooling" instead of "conn-pooling"). Order matters
// only for deterministic resolution when a suffix exists under several
// prefixes.
var knownPrefixes = []string{
	"data-", "conn-", "ram-", "json-", "rqe-", "vector-",
	"semantic-cache-", "stream-", "cluster-", "security-", "observe-",
}

// categoryPrefixes maps the category names accepted by list_topics to
// section prefix tokens. Unknown categories pass through unchanged and
// are treated as literal prefixes.
var categoryPrefixes = map[string]string{
	"data":           "data",
	"connection":     "conn",
	"memory":         "ram",
	"security":       "security",
	"json":           "json",
	"streams":        "stream",
	"clustering":     "cluster",
	"vector":         "vector",
	"semantic-cache": "semantic-cache",
	"observability":  "observe",
}

// patternRules maps code-example pattern names to rule identifiers.
// Unmapped patterns pass through as literal identifiers.
var patternRules = map[string]string{
	"connection-pool": "conn-pooling",
	"pipeline":        "conn-pipelining",
	"pipelining":      "conn-pipelining",
	"transaction":     "conn-pipelining",
	"pub-sub":         "stream-choosing-pattern",
	"pubsub":          "stream-choosing-pattern",
	"stream-consumer": "stream-choosing-pattern",
	"streams":         "stream-choosing-pattern",
	"rate-limiter":    "data-choose-structure",
	"cache-aside":     "ram-ttl",
	"session-store":   "data-choose-structure",
	"leaderboard":     "data-choose-structure",
	"vector-search":   "vector-algorithm-choice",
	"semantic-cache":  "semantic-cache-best-practices",
	"key-naming":      "data-key-naming",
	"hash-tags":       "cluster-hash-tags",
}

// codeExamplePatterns is the advertised pattern list for get_code_example
// guidance text.
var codeExamplePatterns = []string{
	"connection-pool", "pipeline", "pub-sub", "stream-consumer",
	"rate-limiter", "cache-aside", "session-store", "leaderboard",
	"vector-search", "semantic-cache", "key-naming", "hash-tags",
}

// Base is the loaded, indexed corpus. It is immutable after Load
// returns; all query methods are pure reads and safe for concurrent use.
type Base struct {
	sections  []*Section          // sorted by Number
	byPrefix  map[string]*Section // prefix -> section
	rules     map[string]*Rule    // identifier -> rule
	ruleOrder []*Rule             // load order, for stable ranking
	byTag     map[string][]*Rule
	fullGuide string
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	rulesGlob string
	logger    *slog.Logger
}

// WithRulesGlob overrides the glob pattern (doublestar syntax, relative
// to the corpus root) used to enumerate rule documents. The default is
// "rules/*.md".
func WithRulesGlob(glob string) Option {
	return func(o *loadOptions) { o.rulesGlob = glob }
}

// WithLogger sets the logger used for per-document skip diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// Load builds a Base from a corpus filesystem. Loading is best-effort:
// documents that fail to parse are skipped with a log line, a missing
// sections registry degrades to zero sections, and a missing AGENTS.md
// switches FullGuide to deterministic synthesis. Load fails only when
// the rule enumeration itself is impossible (bad glob).
func Load(fsys fs.FS, opts ...Option) (*Base, error) {
	o := loadOptions{rulesGlob: "rules/*.md", logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	matches, err := doublestar.Glob(fsys, o.rulesGlob)
	if err != nil {
		return nil, fmt.Errorf("enumerating rules with %q: %w", o.rulesGlob, err)
	}
	sort.Strings(matches)

	b := &Base{
		byPrefix: make(map[string]*Section),
		rules:    make(map[string]*Rule),
		byTag:    make(map[string][]*Rule),
	}

	// The registry lives alongside the rules; reserved "_" names are
	// never loaded as rules.
	for _, name := range matches {
		if path.Base(name) != sectionsName {
			continue
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			o.logger.Warn("reading sections registry", "path", name, "error", err)
			break
		}
		b.addSections(parseSections(string(data)))
		break
	}

	for _, name := range matches {
		base := path.Base(name)
		if strings.HasPrefix(base, "_") {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			o.logger.Warn("reading rule document", "path", name, "error", err)
			continue
		}

		identifier := strings.TrimSuffix(base, path.Ext(base))
		rule, err := ParseRule(identifier, data)
		if err != nil {
			o.logger.Debug("skipping document", "path", name, "reason", err)
			continue
		}
		b.addRule(rule, o.logger)
	}

	if data, err := fs.ReadFile(fsys, guideName); err == nil {
		b.fullGuide = string(data)
	} else {
		b.fullGuide = b.synthesizeGuide()
	}

	return b, nil
}

func (b *Base) addSections(sections []*Section) {
	for _, s := range sections {
		b.byPrefix[s.Prefix] = s
		b.sections = append(b.sections, s)
	}
	sort.SliceStable(b.sections, func(i, j int) bool {
		return b.sections[i].Number < b.sections[j].Number
	})
}

func (b *Base) addRule(rule *Rule, logger *slog.Logger) {
	if prev, ok := b.rules[rule.Identifier]; ok {
		// Last write wins; a duplicate identifier is a corpus quality
		// issue, not a load failure.
		logger.Warn("duplicate rule identifier", "identifier", rule.Identifier, "previous", prev.Title)
	}
	b.rules[rule.Identifier] = rule
	b.ruleOrder = append(b.ruleOrder, rule)

	for _, tag := range rule.Tags {
		b.byTag[tag] = append(b.byTag[tag], rule)
	}

	if section := b.sectionFor(rule.Identifier); section != nil {
		section.Rules = append(section.Rules, rule)
		rule.SectionNumber = section.Number
	}
}

// sectionFor resolves a rule's section by the longest registered prefix
// whose hyphen-joined token boundary matches the identifier, falling
// back to the identifier's first token.
func (b *Base) sectionFor(identifier string) *Section {
	var best *Section
	for prefix, section := range b.byPrefix {
		if identifier != prefix && !strings.HasPrefix(identifier, prefix+"-") {
			continue
		}
		if best == nil || len(prefix) > len(best.Prefix) {
			best = section
		}
	}
	if best != nil {
		return best
	}
	first, _, _ := strings.Cut(identifier, "-")
	return b.byPrefix[first]
}

// RuleByIdentifier looks up a rule by exact identifier. Callers often
// pass a bare suffix, so on a miss each known section prefix is tried
// before reporting not found. There is no fuzzy matching at this layer.
func (b *Base) RuleByIdentifier(id string) (*Rule, bool) {
	if rule, ok := b.rules[id]; ok {
		return rule, true
	}
	for _, prefix := range knownPrefixes {
		if rule, ok := b.rules[prefix+id]; ok {
			return rule, true
		}
	}
	return nil, false
}

// Search scores every rule against the query and returns all rules with
// a positive score, most relevant first. Ties keep load order (stable
// sort), so results are reproducible across calls.
//
// Scoring is additive: +10 for the query as a title substring, +5 per
// query word equal to a title word, +3 per tag containing the query,
// +2 per tag equal to a query word (both tag signals may stack), +1 for
// a content substring, +2 for an impact-description substring. All
// comparisons are case-insensitive.
func (b *Base) Search(query string) []*Rule {
	queryLower := strings.ToLower(query)
	queryWords := make(map[string]bool)
	for _, w := range strings.Fields(queryLower) {
		queryWords[w] = true
	}

	type scored struct {
		score int
		rule  *Rule
	}
	var results []scored

	for _, rule := range b.ruleOrder {
		score := 0

		titleLower := strings.ToLower(rule.Title)
		if strings.Contains(titleLower, queryLower) {
			score += 10
		}

		seen := make(map[string]bool)
		for _, w := range strings.Fields(titleLower) {
			if queryWords[w] && !seen[w] {
				score += 5
				seen[w] = true
			}
		}

		for _, tag := range rule.Tags {
			tagLower := strings.ToLower(tag)
			if strings.Contains(tagLower, queryLower) {
				score += 3
			}
			if queryWords[tagLower] {
				score += 2
			}
		}

		if strings.Contains(strings.ToLower(rule.Content), queryLower) {
			score++
		}
		if strings.Contains(strings.ToLower(rule.ImpactDescription), queryLower) {
			score += 2
		}

		if score > 0 {
			results = append(results, scored{score, rule})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	rules := make([]*Rule, len(results))
	for i, r := range results {
		rules[i] = r.rule
	}
	return rules
}

// Sections returns all sections sorted ascending by number. A non-empty
// category is translated through the category map (unknown categories
// pass through as literal prefixes) and filters the result to sections
// with that exact prefix.
func (b *Base) Sections(category string) []*Section {
	if category == "" {
		return append([]*Section(nil), b.sections...)
	}
	prefix, ok := categoryPrefixes[category]
	if !ok {
		prefix = category
	}
	var filtered []*Section
	for _, s := range b.sections {
		if s.Prefix == prefix {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// AntiPatternGroup is one category's anti-patterns, in extraction order.
type AntiPatternGroup struct {
	Category string
	Patterns []AntiPattern
}

// AntiPatterns extracts paired Incorrect/Correct code blocks from every
// rule, grouped by the owning section's name ("Other" for ungrouped
// rules). Groups appear in first-contribution order. A rule contributes
// only when it has at least one block of each label; pairs are matched
// by order of appearance up to the smaller count, and unpaired extras
// are dropped. A non-empty topic keeps only rules whose identifier or
// joined tags contain it (case-insensitive).
func (b *Base) AntiPatterns(topic string) []AntiPatternGroup {
	topicLower := strings.ToLower(topic)

	var groups []AntiPatternGroup
	index := make(map[string]int)

	for _, rule := range b.ruleOrder {
		if topicLower != "" &&
			!strings.Contains(rule.Identifier, topicLower) &&
			!strings.Contains(strings.ToLower(strings.Join(rule.Tags, " ")), topicLower) {
			continue
		}

		incorrect := findLabeledBlocks(incorrectBlockRe, rule.Content)
		correct := findLabeledBlocks(correctBlockRe, rule.Content)
		if len(incorrect) == 0 || len(correct) == 0 {
			continue
		}

		category := "Other"
		if section := b.sectionFor(rule.Identifier); section != nil {
			category = section.Name
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, AntiPatternGroup{Category: category})
		}

		n := min(len(incorrect), len(correct))
		for k := 0; k < n; k++ {
			title := incorrect[k].title
			if title == "" {
				title = rule.Title
			}
			groups[i].Patterns = append(groups[i].Patterns, AntiPattern{
				Title:    title,
				Reason:   rule.ImpactDescription,
				BadCode:  incorrect[k].code,
				GoodCode: correct[k].code,
				Language: incorrect[k].language,
				Category: category,
			})
		}
	}

	return groups
}

// CodeExample resolves a pattern name to a rule and extracts its first
// code block in the requested language, falling back to the first block
// of any language. The returned example reports the actual language of
// the code it carries, so a fallback substitution is visible to the
// caller. Returns ok=false when the pattern resolves to no rule or the
// rule has no code blocks at all.
func (b *Base) CodeExample(pattern, language string) (*CodeExample, bool) {
	normalized := NormalizeTopic(pattern)
	identifier, ok := patternRules[normalized]
	if !ok {
		identifier = normalized
	}

	rule, ok := b.RuleByIdentifier(identifier)
	if !ok {
		return nil, false
	}

	code, actual := "", language
	if c, ok := findCodeBlock(rule.Content, language); ok {
		code = c
	} else if c, lang, ok := findAnyCodeBlock(rule.Content); ok {
		code, actual = c, lang
	} else {
		return nil, false
	}

	description := rule.Summary
	if description == "" {
		description = rule.ImpactDescription
	}

	return &CodeExample{
		Title:       rule.Title,
		Description: description,
		Code:        code,
		Language:    actual,
		References:  findReferences(rule.Content),
	}, true
}

// FullGuide returns the aggregate guide loaded or synthesized at
// construction, verbatim on every call.
func (b *Base) FullGuide() string {
	return b.fullGuide
}

// Identifiers returns all rule identifiers, sorted.
func (b *Base) Identifiers() []string {
	ids := make([]string, 0, len(b.rules))
	for id := range b.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RulesByTag returns the rules carrying the exact tag, in load order.
func (b *Base) RulesByTag(tag string) []*Rule {
	return b.byTag[tag]
}

// RuleCount reports the number of loaded rules.
func (b *Base) RuleCount() int {
	return len(b.ruleOrder)
}

// CodeExamplePatterns returns the advertised pattern names for
// get_code_example guidance.
func CodeExamplePatterns() []string {
	return append([]string(nil), codeExamplePatterns...)
}

// NormalizeTopic canonicalizes a caller-supplied topic or pattern name:
// trimmed, lowercased, with spaces and underscores replaced by hyphens.
func NormalizeTopic(topic string) string {
	t := strings.ToLower(strings.TrimSpace(topic))
	t = strings.ReplaceAll(t, " ", "-")
	return strings.ReplaceAll(t, "_", "-")
}
