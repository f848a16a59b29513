// Package generate turns parsed prompt templates into draft responses
// using a configured completion backend.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptdeck/promptdeck/vendors"
)

// ErrNotConfigured is returned when no completion backend is available
var ErrNotConfigured = errors.New("generate: no completion backend configured")

const systemPrompt = `You are a coding assistant working inside a prompt-driven project.
You are given a prompt template extracted from a project prompt file, and
optionally the source file it targets. Follow the template's instruction
and answer concisely. If source code is provided, ground your answer in it.`

// Request holds a single generation request. Either Template carries
// the prompt text directly, or Path plus the section/prompt indices
// reference a persisted prompt record.
type Request struct {
	Template string `json:"template,omitempty"`
	Example  string `json:"example,omitempty"`
	Source   string `json:"source,omitempty"`

	Path         string `json:"path,omitempty"`
	SectionIndex *int   `json:"sectionIndex,omitempty"`
	PromptIndex  *int   `json:"promptIndex,omitempty"`
}

// Result holds the generated completion
type Result struct {
	Content     string `json:"content"`
	Model       string `json:"model,omitempty"`
	TotalTokens int    `json:"totalTokens,omitempty"`
}

// Generator produces completions for prompt templates
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// OpenAIGenerator implements Generator on top of the shared OpenAI client
type OpenAIGenerator struct{}

// NewOpenAIGenerator returns a generator backed by the OpenAI vendor client
func NewOpenAIGenerator() *OpenAIGenerator {
	return &OpenAIGenerator{}
}

// Generate runs the template through the completion backend
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	client := vendors.GetOpenAIClient()
	if client == nil {
		return nil, ErrNotConfigured
	}

	resp, err := client.Complete(ctx, vendors.CompletionOptions{
		SystemPrompt: systemPrompt,
		Prompt:       buildPrompt(req),
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	if resp == nil {
		return nil, ErrNotConfigured
	}

	return &Result{
		Content:     resp.Content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Template:\n")
	b.WriteString(strings.TrimSpace(req.Template))

	if req.Example != "" {
		b.WriteString("\n\nExample usage:\n")
		b.WriteString(strings.TrimSpace(req.Example))
	}

	if req.Source != "" {
		b.WriteString("\n\nTarget source file:\n```\n")
		b.WriteString(req.Source)
		if !strings.HasSuffix(req.Source, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```")
	}

	return b.String()
}
