package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/generate"
	"github.com/promptdeck/promptdeck/log"
)

var generateLogger = log.GetLogger("ApiGenerate")

var generator generate.Generator = generate.NewOpenAIGenerator()

// Generate handles POST /api/generate
// Accepts either a raw template (with optional source) or a reference
// to a persisted prompt record by path and section/prompt indices.
func Generate(c *gin.Context) {
	var req generate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.Template == "" && req.Path == "" {
		RespondBadRequest(c, "either template or path is required")
		return
	}

	if req.Path != "" {
		if err := resolvePromptRecord(&req); err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
	}

	result, err := generator.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, generate.ErrNotConfigured) {
			RespondServiceUnavailable(c, "generation is not configured")
			return
		}
		generateLogger.Error().Err(err).Msg("generation failed")
		RespondInternalError(c, "generation failed")
		return
	}

	RespondData(c, result)
}

// resolvePromptRecord fills Template/Example/Source from a persisted
// prompt record referenced by path + sectionIndex + promptIndex
func resolvePromptRecord(req *generate.Request) error {
	relPath, ok := cleanRelPath(req.Path)
	if !ok {
		return errors.New("invalid path")
	}
	if req.SectionIndex == nil || req.PromptIndex == nil {
		return errors.New("sectionIndex and promptIndex are required with path")
	}

	record, err := db.GetFileWithSections(relPath)
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}
	if record == nil {
		return fmt.Errorf("no record for path: %s", relPath)
	}

	si, pi := *req.SectionIndex, *req.PromptIndex
	if si < 0 || si >= len(record.Sections) {
		return fmt.Errorf("sectionIndex %d out of range", si)
	}
	prompts := record.Sections[si].Prompts
	if pi < 0 || pi >= len(prompts) {
		return fmt.Errorf("promptIndex %d out of range", pi)
	}

	req.Template = prompts[pi].Template
	req.Example = prompts[pi].Example
	if req.Source == "" {
		req.Source = record.RawContent
	}
	return nil
}
