package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_ExplicitLineRange(t *testing.T) {
	content := strings.Join([]string{
		"SECTION 1: Header (Lines 10-20)",
		"PURPOSE: Renders the page header",
		`NLP_PROMPT: "Change the header title"`,
		`EXAMPLE: "make the title bigger"`,
	}, "\n")

	sections := Parse(content)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}

	sec := sections[0]
	if sec.Name != "Header" {
		t.Errorf("Name = %q, want %q", sec.Name, "Header")
	}
	if sec.StartLine != 10 || sec.EndLine != 20 {
		t.Errorf("range = %d-%d, want 10-20", sec.StartLine, sec.EndLine)
	}
	if sec.Purpose != "Renders the page header" {
		t.Errorf("Purpose = %q", sec.Purpose)
	}

	if len(sec.Prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(sec.Prompts))
	}
	p := sec.Prompts[0]
	if p.Template != "Change the header title" {
		t.Errorf("Template = %q", p.Template)
	}
	if p.Example != "make the title bigger" {
		t.Errorf("Example = %q", p.Example)
	}
	if p.Type != TypeNLP {
		t.Errorf("Type = %q, want %q", p.Type, TypeNLP)
	}
	if p.LineNumber != 3 {
		t.Errorf("LineNumber = %d, want 3", p.LineNumber)
	}
}

func TestParse_InferredLineRanges(t *testing.T) {
	content := strings.Join([]string{
		"intro text before any section is discarded",
		"SECTION 1: First",
		"NLP_PROMPT: alpha",
		"SECTION 2: Second",
		"NLP_PROMPT: beta",
	}, "\n")

	sections := Parse(content)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	if sections[0].StartLine != 3 || sections[0].EndLine != 3 {
		t.Errorf("first range = %d-%d, want 3-3", sections[0].StartLine, sections[0].EndLine)
	}
	if sections[1].StartLine != 5 || sections[1].EndLine != 5 {
		t.Errorf("second range = %d-%d, want 5-5", sections[1].StartLine, sections[1].EndLine)
	}
}

func TestParse_ContentBeforeFirstHeaderDiscarded(t *testing.T) {
	content := strings.Join([]string{
		"NLP_PROMPT: orphan",
		"1. orphan item",
		"SECTION 1: Only",
		"NLP_PROMPT: kept",
	}, "\n")

	sections := Parse(content)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if len(sections[0].Prompts) != 1 || sections[0].Prompts[0].Template != "kept" {
		t.Errorf("prompts = %+v, want single %q", sections[0].Prompts, "kept")
	}
}

func TestParse_FencedBlocksAreInvisible(t *testing.T) {
	content := strings.Join([]string{
		"SECTION 1: Real",
		"```",
		"SECTION 2: Fake",
		"NLP_PROMPT: hidden",
		"```",
		"NLP_PROMPT: visible",
	}, "\n")

	sections := Parse(content)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "Real" {
		t.Errorf("Name = %q, want %q", sections[0].Name, "Real")
	}
	if len(sections[0].Prompts) != 1 || sections[0].Prompts[0].Template != "visible" {
		t.Errorf("prompts = %+v, want single %q", sections[0].Prompts, "visible")
	}
}

func TestParse_Idempotent(t *testing.T) {
	content := strings.Join([]string{
		"SECTION 1: Mixed (Lines 1-40)",
		"PURPOSE: Everything at once",
		"NLP_PROMPT: tagged prompt",
		"EXAMPLE: tagged example",
		"1. numbered item",
		"- with a detail",
		"► action marker",
		"| col a | col b |",
		"## markdown heading",
		"CUSTOM MARKER:",
		"SECTION 2: Tail",
		"DEV_PROMPT: last",
	}, "\n")

	first := Parse(content)
	second := Parse(content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) != 2 {
		t.Errorf("got %d sections, want 2", len(first))
	}
}

func TestParse_EmptyAndHeaderless(t *testing.T) {
	for _, content := range []string{"", "\n\n", "just prose\nno headers here"} {
		if got := Parse(content); len(got) != 0 {
			t.Errorf("Parse(%q) = %+v, want no sections", content, got)
		}
	}
}

func TestParse_SectionHeaderVariants(t *testing.T) {
	tests := []struct {
		line string
		name string
	}{
		{"SECTION 1: Imports", "Imports"},
		{"section 2. lowercase dotted", "lowercase dotted"},
		{"SECTION 3", ""},
		{"SECTION 12: Spaced Out Name", "Spaced Out Name"},
	}

	for _, tt := range tests {
		sections := Parse(tt.line + "\n")
		if len(sections) != 1 {
			t.Errorf("Parse(%q): got %d sections, want 1", tt.line, len(sections))
			continue
		}
		if sections[0].Name != tt.name {
			t.Errorf("Parse(%q): Name = %q, want %q", tt.line, sections[0].Name, tt.name)
		}
	}
}

func TestIsMasterPrompt(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     bool
	}{
		{"filename marker", "MASTER_PROMPT.txt", "", true},
		{"content marker", "index.txt", "=== MASTER NLP PROMPT ===", true},
		{"plain page", "Dashboard.txt", "SECTION 1: Header", false},
		{"lowercase master in name", "master.txt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMasterPrompt(tt.fileName, tt.content); got != tt.want {
				t.Errorf("IsMasterPrompt(%q, ...) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}
