package syncer

import (
	"testing"

	"github.com/promptdeck/promptdeck/parser"
)

func TestToSectionRecords(t *testing.T) {
	sections := []parser.Section{
		{
			Name:      "Header",
			StartLine: 10,
			EndLine:   20,
			Purpose:   "renders header",
			Prompts: []parser.Prompt{
				{Template: "change title", Example: "make it bigger", LineNumber: 3, Type: parser.TypeNLP},
				{Template: "swap logo", LineNumber: 5, Type: parser.TypeDeveloper},
			},
		},
		{Name: "Footer", StartLine: 21, EndLine: 30},
	}

	records := toSectionRecords("src/App.tsx", sections)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.FilePath != "src/App.tsx" || first.Position != 0 {
		t.Errorf("first record = %+v", first)
	}
	if first.StartLine != 10 || first.EndLine != 20 {
		t.Errorf("first range = %d-%d", first.StartLine, first.EndLine)
	}
	if len(first.Prompts) != 2 {
		t.Fatalf("got %d prompts, want 2", len(first.Prompts))
	}
	if first.Prompts[0].PromptType != "nlp" || first.Prompts[1].PromptType != "developer" {
		t.Errorf("prompt types = %q, %q", first.Prompts[0].PromptType, first.Prompts[1].PromptType)
	}
	if first.Prompts[1].Position != 1 {
		t.Errorf("second prompt position = %d, want 1", first.Prompts[1].Position)
	}

	if records[1].Position != 1 || records[1].Name != "Footer" {
		t.Errorf("second record = %+v", records[1])
	}
	if len(records[1].Prompts) != 0 {
		t.Errorf("second record prompts = %+v, want none", records[1].Prompts)
	}
}

func TestSearchContent(t *testing.T) {
	sections := []parser.Section{
		{Name: "Header", Prompts: []parser.Prompt{{Template: "change title"}}},
		{Name: "Footer"},
	}

	got := searchContent(sections)
	want := "Header\nchange title\nFooter\n"
	if got != want {
		t.Errorf("searchContent = %q, want %q", got, want)
	}

	if searchContent(nil) != "" {
		t.Errorf("searchContent(nil) = %q, want empty", searchContent(nil))
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one line", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
	}

	for _, tt := range tests {
		if got := countLines(tt.content); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
