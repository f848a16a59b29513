package parser

import (
	"regexp"
	"strings"
)

// Fallback values used when a master prompt file is missing one of its
// marker pairs. A missing region is never an error.
const (
	fallbackInstruction = "No instruction syntax defined"
	fallbackSections    = "No sections listed"
	fallbackExamples    = "No examples provided"
)

// The three regions of a master prompt file, each delimited by a fixed
// marker pair. Spans are greedy but non-overlapping.
var (
	instructionRe = regexp.MustCompile(`(?s)INSTRUCTION SYNTAX:(.*?)AVAILABLE SECTIONS:`)
	sectionsRe    = regexp.MustCompile(`(?s)AVAILABLE SECTIONS:(.*?)QUERY EXAMPLES:`)
	examplesRe    = regexp.MustCompile(`(?s)QUERY EXAMPLES:(.*?)METADATA SOURCE:`)
)

// ParseMaster extracts the three fixed fields of a master prompt file.
// Quote characters are stripped from the instruction field.
func ParseMaster(content string) Master {
	return Master{
		NLPInstruction:  strings.TrimSpace(strings.ReplaceAll(extractRegion(instructionRe, content, fallbackInstruction), `"`, "")),
		SectionsSummary: extractRegion(sectionsRe, content, fallbackSections),
		QueryExamples:   extractRegion(examplesRe, content, fallbackExamples),
	}
}

func extractRegion(re *regexp.Regexp, content, fallback string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}
