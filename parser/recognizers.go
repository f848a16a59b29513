package parser

import (
	"regexp"
	"strings"
)

// Lookahead bounds carried over from the original heuristics. They are
// deliberate constants, not tuned values.
const (
	// actionLookahead bounds how many lines an action marker collects
	actionLookahead = 4

	// headingLookahead bounds how far a markdown heading searches for
	// example text
	headingLookahead = 9

	// headingExampleMax bounds how many candidate example lines a
	// heading collects
	headingExampleMax = 3
)

// recognizer tries to match the line at lines[i] inside sec. On success
// it mutates the section (usually appending a prompt) and reports how
// many lines it consumed, at least 1. Recognizers are tried in priority
// order; later ones are strictly more permissive than earlier ones, so
// the order itself is an invariant.
type recognizer interface {
	match(lines []string, i int, sec *Section) (consumed int, ok bool)
}

// recognizers is the priority-ordered chain applied to every line inside
// a section
var recognizers = []recognizer{
	purposeRecognizer{},
	taggedRecognizer{re: nlpPromptRe, promptType: TypeNLP},
	taggedRecognizer{re: devPromptRe, promptType: TypeDeveloper},
	taggedRecognizer{re: legacyPromptRe, promptType: TypeNLP},
	decorationRecognizer{},
	numberedRecognizer{},
	actionRecognizer{},
	tableRowRecognizer{},
	headingRecognizer{},
	allCapsRecognizer{},
}

var (
	sectionHeaderRe = regexp.MustCompile(`(?i)^SECTION\s+(\d+)[:.]?\s*(.*)$`)
	sectionLinesRe  = regexp.MustCompile(`(?i)^(.*?)\s*\(Lines\s+(\d+)\s*-\s*(\d+)\)$`)

	purposeRe      = regexp.MustCompile(`(?i)^PURPOSE:\s*(.*)$`)
	nlpPromptRe    = regexp.MustCompile(`(?i)^NLP_PROMPT:\s*(.*)$`)
	devPromptRe    = regexp.MustCompile(`(?i)^DEV_PROMPT:\s*(.*)$`)
	legacyPromptRe = regexp.MustCompile(`(?i)^(?:PROMPT|TEMPLATE):\s*(.*)$`)
	exampleRe      = regexp.MustCompile(`(?i)^EXAMPLE:\s*(.*)$`)

	decorationRe = regexp.MustCompile(`^[=\-*_]{3,}$`)
	numberedRe   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	bulletRe     = regexp.MustCompile(`^[-•]\s*(.+)$`)
	actionRe     = regexp.MustCompile(`^[►>]\s+(.+)$`)
	headingRe    = regexp.MustCompile(`^#{2,3}\s+(.+)$`)
	allCapsRe    = regexp.MustCompile(`^([A-Z][A-Z0-9_]*(?:[ \t]+[A-Z][A-Z0-9_]*)*):\s*$`)

	tableSeparatorRe = regexp.MustCompile(`^[\s\-|]+$`)
)

// reservedHeadings are all-caps prefixes that already have structural
// meaning and must not become prompts
var reservedHeadings = map[string]bool{
	"PURPOSE": true,
	"SECTION": true,
	"IMPORTS": true,
	"FILE":    true,
	"END":     true,
}

// stripQuotes removes one pair of surrounding single or double quotes
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isSectionHeader(line string) bool {
	return sectionHeaderRe.MatchString(strings.TrimSpace(line))
}

// isSkipLine reports whether a line is blank, a decoration run, or a
// single-# comment — lines that never carry prompt content
func isSkipLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return true
	}
	if decorationRe.MatchString(t) {
		return true
	}
	if strings.HasPrefix(t, "#") && !strings.HasPrefix(t, "##") {
		return true
	}
	return false
}

// purposeRecognizer sets the section's purpose from a "purpose:" line
type purposeRecognizer struct{}

func (purposeRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := purposeRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}
	sec.Purpose = strings.TrimSpace(m[1])
	return 1, true
}

// taggedRecognizer handles the explicit NLP_PROMPT / DEV_PROMPT /
// PROMPT / TEMPLATE tags, each optionally followed by an EXAMPLE line
type taggedRecognizer struct {
	re         *regexp.Regexp
	promptType PromptType
}

func (r taggedRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := r.re.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}

	template := stripQuotes(m[1])
	consumed := 1

	example := ""
	if i+1 < len(lines) {
		if em := exampleRe.FindStringSubmatch(strings.TrimSpace(lines[i+1])); em != nil {
			example = stripQuotes(em[1])
			consumed = 2
		}
	}

	if template == "" {
		// Tag with no content: the line is handled but yields no prompt
		return consumed, true
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   template,
		Example:    example,
		LineNumber: i + 1,
		Type:       r.promptType,
	})
	return consumed, true
}

// decorationRecognizer swallows blank lines, decoration runs and
// single-# comments without producing a record
type decorationRecognizer struct{}

func (decorationRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	if isSkipLine(lines[i]) {
		return 1, true
	}
	return 0, false
}

// numberedRecognizer turns a "<n>. <text>" item into a prompt, folding
// any immediately following bullet detail lines into the template
type numberedRecognizer struct{}

func (numberedRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := numberedRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}

	template := strings.TrimSpace(m[2])
	consumed := 1

	var details []string
	for j := i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if numberedRe.MatchString(t) || isSectionHeader(t) || allCapsRe.MatchString(t) {
			break
		}
		bm := bulletRe.FindStringSubmatch(t)
		if bm == nil || decorationRe.MatchString(t) {
			break
		}
		details = append(details, strings.TrimSpace(bm[1]))
		consumed++
	}

	if len(details) > 0 {
		template += ": " + strings.Join(details, "; ")
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   template,
		LineNumber: i + 1,
		Type:       TypeNLP,
	})
	return consumed, true
}

// actionRecognizer handles "► text" / "> text" action markers with a
// short window of dash detail lines
type actionRecognizer struct{}

func (actionRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := actionRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}

	template := strings.TrimSpace(m[1])
	consumed := 1

	var details []string
	for j := i + 1; j < len(lines) && j <= i+actionLookahead; j++ {
		t := strings.TrimSpace(lines[j])
		if actionRe.MatchString(t) || numberedRe.MatchString(t) || isSectionHeader(t) {
			break
		}
		if !strings.HasPrefix(t, "-") || strings.HasPrefix(t, "---") {
			break
		}
		details = append(details, strings.TrimSpace(strings.TrimPrefix(t, "-")))
		consumed++
	}

	if len(details) > 0 {
		template += " " + strings.Join(details, " | ")
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   template,
		LineNumber: i + 1,
		Type:       TypeNLP,
	})
	return consumed, true
}

// tableRowRecognizer turns a markdown table data row into a developer
// prompt; separator rows are ignored
type tableRowRecognizer struct{}

func (tableRowRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	t := strings.TrimSpace(lines[i])
	if len(t) < 2 || !strings.HasPrefix(t, "|") || !strings.HasSuffix(t, "|") {
		return 0, false
	}
	if tableSeparatorRe.MatchString(t) {
		return 0, false
	}

	var cells []string
	for _, cell := range strings.Split(t[1:len(t)-1], "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) < 2 {
		return 0, false
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   strings.Join(cells, " | "),
		LineNumber: i + 1,
		Type:       TypeDeveloper,
	})
	return 1, true
}

// headingRecognizer turns "## text" / "### text" into a developer
// prompt, peeking ahead for example text without consuming it
type headingRecognizer struct{}

func (headingRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}

	var candidates []string
	for j := i + 1; j < len(lines) && j <= i+headingLookahead; j++ {
		t := strings.TrimSpace(lines[j])
		if headingRe.MatchString(t) || isSectionHeader(t) {
			break
		}
		if isSkipLine(t) || strings.HasPrefix(t, "```") {
			continue
		}
		candidates = append(candidates, t)
		if len(candidates) >= headingExampleMax {
			break
		}
	}

	example := ""
	if len(candidates) > 0 {
		example = candidates[0]
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   strings.TrimSpace(m[1]),
		Example:    example,
		LineNumber: i + 1,
		Type:       TypeDeveloper,
	})
	return 1, true
}

// allCapsRecognizer catches free-form "WORD WORDS:" headings that are
// not reserved structural markers. It is the most permissive rule and
// must stay last.
type allCapsRecognizer struct{}

func (allCapsRecognizer) match(lines []string, i int, sec *Section) (int, bool) {
	m := allCapsRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return 0, false
	}

	firstWord := strings.Fields(m[1])[0]
	if reservedHeadings[firstWord] {
		return 0, false
	}

	sec.Prompts = append(sec.Prompts, Prompt{
		Template:   m[1],
		LineNumber: i + 1,
		Type:       TypeNLP,
	})
	return 1, true
}
