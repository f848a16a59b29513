package parser

// PromptType classifies an extracted prompt
type PromptType string

const (
	// TypeNLP marks natural-language instruction prompts
	TypeNLP PromptType = "nlp"

	// TypeDeveloper marks developer-facing structural prompts
	TypeDeveloper PromptType = "developer"
)

// Prompt is one extracted instruction unit. LineNumber is 1-based and
// refers to the prompt file's own line where the content begins.
type Prompt struct {
	Template   string     `json:"template"`
	Example    string     `json:"example,omitempty"`
	LineNumber int        `json:"lineNumber"`
	Type       PromptType `json:"promptType"`
}

// Section is a named grouping of prompts corresponding to a line range
// of the target source file. StartLine and EndLine are 1-based inclusive
// source-file lines; when no explicit (Lines X-Y) annotation is present
// they are inferred from the prompt file's own layout.
type Section struct {
	Name      string   `json:"name"`
	StartLine int      `json:"startLine"`
	EndLine   int      `json:"endLine"`
	Purpose   string   `json:"purpose,omitempty"`
	Prompts   []Prompt `json:"prompts"`
}

// Master holds the three fixed fields of a project-level master prompt
// file
type Master struct {
	NLPInstruction  string `json:"nlpInstruction"`
	SectionsSummary string `json:"sectionsSummary"`
	QueryExamples   string `json:"queryExamples"`
}
