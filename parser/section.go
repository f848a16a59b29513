package parser

import (
	"strconv"
	"strings"
)

// Parse converts one prompt file's text into its ordered sections. It is
// a single forward scan; lines inside fenced code blocks are invisible
// to every recognizer, unmatched lines are dropped, and content before
// the first section header is discarded. Parsing is stateless: the same
// input always yields a structurally identical result.
func Parse(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	var current *Section
	explicitRange := false
	inCodeBlock := false

	// flush closes the current section. nextHeaderLine is the 1-based
	// line of the header that ends it, or len(lines)+1 at end of input;
	// inferred sections end on the line before it.
	flush := func(nextHeaderLine int) {
		if current == nil {
			return
		}
		if !explicitRange {
			current.EndLine = nextHeaderLine - 1
		}
		sections = append(sections, *current)
		current = nil
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		if m := sectionHeaderRe.FindStringSubmatch(trimmed); m != nil {
			flush(i + 1)
			sec, explicit := newSection(m[2], i+1)
			current = &sec
			explicitRange = explicit
			continue
		}

		if current == nil {
			continue
		}

		for _, r := range recognizers {
			if consumed, ok := r.match(lines, i, current); ok {
				i += consumed - 1
				break
			}
		}
	}

	flush(len(lines) + 1)
	return sections
}

// newSection builds a section from a header's rest-of-line. headerLine
// is the 1-based prompt-file line of the header itself. A trailing
// "(Lines X-Y)" annotation pins the source range explicitly; otherwise
// the range is inferred from the prompt file layout.
func newSection(rest string, headerLine int) (Section, bool) {
	name := strings.TrimSpace(rest)

	if m := sectionLinesRe.FindStringSubmatch(name); m != nil {
		start, _ := strconv.Atoi(m[2])
		end, _ := strconv.Atoi(m[3])
		return Section{
			Name:      strings.TrimSpace(m[1]),
			StartLine: start,
			EndLine:   end,
		}, true
	}

	return Section{
		Name:      name,
		StartLine: headerLine + 1,
	}, false
}

// masterContentMarker identifies a master prompt file by body content
const masterContentMarker = "MASTER NLP PROMPT"

// IsMasterPrompt reports whether a prompt file is a project-level master
// prompt, by filename or by body marker
func IsMasterPrompt(fileName, content string) bool {
	return strings.Contains(fileName, "MASTER") || strings.Contains(content, masterContentMarker)
}
