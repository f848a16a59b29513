package db

import (
	"database/sql"
	"time"
)

// FileRecord represents one target code file in the database
type FileRecord struct {
	Path           string  `json:"path"`
	Name           string  `json:"name"`
	PromptFilePath *string `json:"promptFilePath,omitempty"`
	RawContent     string  `json:"rawContent,omitempty"`
	TotalLines     int     `json:"totalLines"`
	HasCode        bool    `json:"hasCode"`
	HasPrompt      bool    `json:"hasPrompt"`
	CreatedAt      int64   `json:"createdAt"`
	UpdatedAt      int64   `json:"updatedAt"`
}

// SectionRecord is a named, line-range-scoped grouping of prompts
// extracted from one prompt file. Line numbers refer to the target code
// file, not the prompt file.
type SectionRecord struct {
	ID        string         `json:"id"`
	FilePath  string         `json:"filePath"`
	Position  int            `json:"position"`
	Name      string         `json:"name"`
	StartLine int            `json:"startLine"`
	EndLine   int            `json:"endLine"`
	Purpose   string         `json:"purpose,omitempty"`
	Prompts   []PromptRecord `json:"prompts"`
}

// PromptRecord is one extracted instruction unit.
// LineNumber refers to the prompt file's own line.
type PromptRecord struct {
	ID         string `json:"id"`
	SectionID  string `json:"sectionId"`
	Position   int    `json:"position"`
	Template   string `json:"template"`
	Example    string `json:"example,omitempty"`
	LineNumber int    `json:"lineNumber"`
	PromptType string `json:"promptType"`
}

// PromptType values stored in the prompts table
const (
	PromptTypeNLP       = "nlp"
	PromptTypeDeveloper = "developer"
)

// MasterPrompt holds a project-level instruction file, keyed by the
// resolved target code file path
type MasterPrompt struct {
	PageFilePath    string `json:"pageFilePath"`
	NLPInstruction  string `json:"nlpInstruction"`
	SectionsSummary string `json:"sectionsSummary"`
	QueryExamples   string `json:"queryExamples"`
	UpdatedAt       int64  `json:"updatedAt"`
}

// SearchDocument is a queued search index entry for one file's prompts
type SearchDocument struct {
	FilePath  string  `json:"filePath"`
	Content   string  `json:"content"`
	Status    string  `json:"status"`
	Error     *string `json:"error,omitempty"`
	UpdatedAt int64   `json:"updatedAt"`
}

// SearchDocument status values
const (
	SearchStatusPending = "pending"
	SearchStatusSynced  = "synced"
	SearchStatusFailed  = "failed"
)

// SyncEntry is the slim projection of a file record consumed by the
// sync differ: the persisted path, its linked prompt file, and when the
// record was last written.
type SyncEntry struct {
	Path           string
	PromptFilePath *string
	UpdatedAt      int64
}

// Setting represents a settings record
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// NowMs returns the current time as Unix milliseconds (int64)
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// NullString converts *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
