package parser

import (
	"strings"
	"testing"
)

func TestParseMaster_AllRegions(t *testing.T) {
	content := strings.Join([]string{
		"=== MASTER NLP PROMPT ===",
		"",
		"INSTRUCTION SYNTAX:",
		`  "change <section> to <value>"`,
		"",
		"AVAILABLE SECTIONS:",
		"  Header, Sidebar, Footer",
		"",
		"QUERY EXAMPLES:",
		"  make the header blue",
		"  hide the sidebar",
		"",
		"METADATA SOURCE:",
		"  generated-prompts/",
	}, "\n")

	m := ParseMaster(content)

	if m.NLPInstruction != "change <section> to <value>" {
		t.Errorf("NLPInstruction = %q", m.NLPInstruction)
	}
	if m.SectionsSummary != "Header, Sidebar, Footer" {
		t.Errorf("SectionsSummary = %q", m.SectionsSummary)
	}
	want := "make the header blue\n  hide the sidebar"
	if m.QueryExamples != want {
		t.Errorf("QueryExamples = %q, want %q", m.QueryExamples, want)
	}
}

func TestParseMaster_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, m Master)
	}{
		{
			name:    "empty content",
			content: "",
			check: func(t *testing.T, m Master) {
				if m.NLPInstruction != fallbackInstruction {
					t.Errorf("NLPInstruction = %q", m.NLPInstruction)
				}
				if m.SectionsSummary != fallbackSections {
					t.Errorf("SectionsSummary = %q", m.SectionsSummary)
				}
				if m.QueryExamples != fallbackExamples {
					t.Errorf("QueryExamples = %q", m.QueryExamples)
				}
			},
		},
		{
			name:    "missing closing marker",
			content: "INSTRUCTION SYNTAX:\nsome syntax\n",
			check: func(t *testing.T, m Master) {
				// No AVAILABLE SECTIONS marker, so the instruction
				// region never closes
				if m.NLPInstruction != fallbackInstruction {
					t.Errorf("NLPInstruction = %q", m.NLPInstruction)
				}
			},
		},
		{
			name: "only examples region",
			content: "QUERY EXAMPLES:\nshow me everything\nMETADATA SOURCE:\nx",
			check: func(t *testing.T, m Master) {
				if m.QueryExamples != "show me everything" {
					t.Errorf("QueryExamples = %q", m.QueryExamples)
				}
				if m.NLPInstruction != fallbackInstruction {
					t.Errorf("NLPInstruction = %q", m.NLPInstruction)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ParseMaster(tt.content))
		})
	}
}

func TestParseMaster_QuoteStripping(t *testing.T) {
	content := `INSTRUCTION SYNTAX: "use \"quoted\" phrases" AVAILABLE SECTIONS: a QUERY EXAMPLES: b METADATA SOURCE: c`

	m := ParseMaster(content)
	if strings.Contains(m.NLPInstruction, `"`) {
		t.Errorf("NLPInstruction still contains quotes: %q", m.NLPInstruction)
	}
}
