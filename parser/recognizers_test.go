package parser

import (
	"strings"
	"testing"
)

// parseSection parses content with a synthetic header prepended and
// returns the single resulting section.
func parseSection(t *testing.T, body ...string) Section {
	t.Helper()
	content := "SECTION 1: Test\n" + strings.Join(body, "\n")
	sections := Parse(content)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	return sections[0]
}

func TestTaggedRecognizer(t *testing.T) {
	tests := []struct {
		name     string
		body     []string
		template string
		example  string
		pType    PromptType
	}{
		{
			name:     "nlp with example",
			body:     []string{`NLP_PROMPT: "Add a button"`, `EXAMPLE: "add a save button"`},
			template: "Add a button",
			example:  "add a save button",
			pType:    TypeNLP,
		},
		{
			name:     "dev prompt",
			body:     []string{"DEV_PROMPT: Refactor the loop"},
			template: "Refactor the loop",
			pType:    TypeDeveloper,
		},
		{
			name:     "legacy prompt tag",
			body:     []string{"PROMPT: old style"},
			template: "old style",
			pType:    TypeNLP,
		},
		{
			name:     "legacy template tag",
			body:     []string{"TEMPLATE: 'single quoted'"},
			template: "single quoted",
			pType:    TypeNLP,
		},
		{
			name:     "case insensitive tag",
			body:     []string{"nlp_prompt: lower tag"},
			template: "lower tag",
			pType:    TypeNLP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := parseSection(t, tt.body...)
			if len(sec.Prompts) != 1 {
				t.Fatalf("got %d prompts, want 1", len(sec.Prompts))
			}
			p := sec.Prompts[0]
			if p.Template != tt.template {
				t.Errorf("Template = %q, want %q", p.Template, tt.template)
			}
			if p.Example != tt.example {
				t.Errorf("Example = %q, want %q", p.Example, tt.example)
			}
			if p.Type != tt.pType {
				t.Errorf("Type = %q, want %q", p.Type, tt.pType)
			}
		})
	}
}

func TestTaggedRecognizer_EmptyTemplateConsumesExample(t *testing.T) {
	sec := parseSection(t,
		"NLP_PROMPT:",
		`EXAMPLE: "orphaned example"`,
	)
	if len(sec.Prompts) != 0 {
		t.Errorf("got %d prompts, want 0: %+v", len(sec.Prompts), sec.Prompts)
	}
}

func TestNumberedRecognizer_FoldsBulletDetails(t *testing.T) {
	sec := parseSection(t,
		"1. First item",
		"- detail A",
		"- detail B",
		"2. Second item",
		"3. Third item",
		"• unicode detail",
	)

	if len(sec.Prompts) != 3 {
		t.Fatalf("got %d prompts, want 3: %+v", len(sec.Prompts), sec.Prompts)
	}

	want := []string{
		"First item: detail A; detail B",
		"Second item",
		"Third item: unicode detail",
	}
	for i, w := range want {
		if sec.Prompts[i].Template != w {
			t.Errorf("prompt %d = %q, want %q", i, sec.Prompts[i].Template, w)
		}
		if sec.Prompts[i].Type != TypeNLP {
			t.Errorf("prompt %d type = %q, want %q", i, sec.Prompts[i].Type, TypeNLP)
		}
	}
}

func TestNumberedRecognizer_DecorationEndsDetails(t *testing.T) {
	sec := parseSection(t,
		"1. Item",
		"---",
		"- stray bullet",
	)

	if len(sec.Prompts) != 1 {
		t.Fatalf("got %d prompts, want 1: %+v", len(sec.Prompts), sec.Prompts)
	}
	if sec.Prompts[0].Template != "Item" {
		t.Errorf("Template = %q, want %q", sec.Prompts[0].Template, "Item")
	}
}

func TestActionRecognizer(t *testing.T) {
	sec := parseSection(t,
		"► Run the build",
		"- uses cache",
		"- fast path",
		"> Deploy",
	)

	if len(sec.Prompts) != 2 {
		t.Fatalf("got %d prompts, want 2: %+v", len(sec.Prompts), sec.Prompts)
	}
	if got, want := sec.Prompts[0].Template, "Run the build uses cache | fast path"; got != want {
		t.Errorf("Template = %q, want %q", got, want)
	}
	if got, want := sec.Prompts[1].Template, "Deploy"; got != want {
		t.Errorf("Template = %q, want %q", got, want)
	}
}

func TestActionRecognizer_LookaheadBound(t *testing.T) {
	body := []string{"► Action"}
	for i := 0; i < actionLookahead+2; i++ {
		body = append(body, "- detail")
	}

	sec := parseSection(t, body...)
	if len(sec.Prompts) == 0 {
		t.Fatal("no prompts parsed")
	}

	// Only the first actionLookahead dash lines fold into the template
	joined := sec.Prompts[0].Template
	if got := strings.Count(joined, "detail"); got != actionLookahead {
		t.Errorf("folded %d details, want %d (template %q)", got, actionLookahead, joined)
	}
}

func TestTableRowRecognizer(t *testing.T) {
	sec := parseSection(t,
		"| Query | Meaning |",
		"|-------|---------|",
		"| show users | lists all users |",
		"| single |",
	)

	if len(sec.Prompts) != 2 {
		t.Fatalf("got %d prompts, want 2: %+v", len(sec.Prompts), sec.Prompts)
	}
	if got, want := sec.Prompts[0].Template, "Query | Meaning"; got != want {
		t.Errorf("Template = %q, want %q", got, want)
	}
	if got, want := sec.Prompts[1].Template, "show users | lists all users"; got != want {
		t.Errorf("Template = %q, want %q", got, want)
	}
	for i, p := range sec.Prompts {
		if p.Type != TypeDeveloper {
			t.Errorf("prompt %d type = %q, want %q", i, p.Type, TypeDeveloper)
		}
	}
}

func TestHeadingRecognizer_PeeksExample(t *testing.T) {
	sec := parseSection(t,
		"## Create user",
		"",
		"# plain comment is skipped",
		"Sends a POST to /users",
		"NLP_PROMPT: also a prompt",
	)

	if len(sec.Prompts) != 2 {
		t.Fatalf("got %d prompts, want 2: %+v", len(sec.Prompts), sec.Prompts)
	}

	h := sec.Prompts[0]
	if h.Template != "Create user" {
		t.Errorf("Template = %q, want %q", h.Template, "Create user")
	}
	if h.Example != "Sends a POST to /users" {
		t.Errorf("Example = %q, want %q", h.Example, "Sends a POST to /users")
	}
	if h.Type != TypeDeveloper {
		t.Errorf("Type = %q, want %q", h.Type, TypeDeveloper)
	}

	// The peeked line is not consumed: the tagged prompt after it parses
	if sec.Prompts[1].Template != "also a prompt" {
		t.Errorf("second prompt = %q", sec.Prompts[1].Template)
	}
}

func TestAllCapsRecognizer(t *testing.T) {
	sec := parseSection(t,
		"IMPORTS:",
		"VALIDATION RULES:",
		"END:",
		"Not All Caps:",
	)

	if len(sec.Prompts) != 1 {
		t.Fatalf("got %d prompts, want 1: %+v", len(sec.Prompts), sec.Prompts)
	}
	if got, want := sec.Prompts[0].Template, "VALIDATION RULES"; got != want {
		t.Errorf("Template = %q, want %q", got, want)
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"quoted"`, "quoted"},
		{`'quoted'`, "quoted"},
		{`  "padded"  `, "padded"},
		{`"mismatched'`, `"mismatched'`},
		{`plain`, "plain"},
		{`""`, ""},
		{`"`, `"`},
	}

	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
