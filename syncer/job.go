package syncer

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/parser"
	"github.com/promptdeck/promptdeck/scan"
)

var logger = log.GetLogger("Syncer")

// Job runs the two externally triggered operations over one project
// root: the full re-seed and the read-only sync check. Calls are
// synchronous; the caller is assumed to hold exclusive access to the
// record store for the duration of a re-seed. A re-seed is an
// at-least-once batch of independent per-file upserts, not a single
// transaction — a crash mid-batch leaves a partially updated record set
// that the next re-seed repairs.
type Job struct {
	cfg scan.Config
}

// NewJob creates a sync job for the given scan configuration
func NewJob(cfg scan.Config) *Job {
	return &Job{cfg: cfg}
}

// Check performs the read-only sync check: it re-scans the tree,
// resolves every prompt file's target, and diffs against the persisted
// snapshot. Nothing is written.
func (j *Job) Check(ctx context.Context) (*SyncReport, error) {
	disk, err := j.collectDiskState(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := db.ListSyncEntries()
	if err != nil {
		return nil, err
	}

	report := Diff(*disk, entries)
	log.Info().
		Bool("inSync", report.InSync).
		Int("changes", report.TotalChanges).
		Msg("sync check complete")
	return &report, nil
}

// collectDiskState scans the tree and builds the canonical disk path
// set. Unreadable prompt files are logged and skipped.
func (j *Job) collectDiskState(ctx context.Context) (*DiskState, error) {
	result, err := scan.NewScanner(j.cfg).Scan()
	if err != nil {
		return nil, err
	}
	resolver := scan.NewResolver(j.cfg, result)

	disk := &DiskState{
		Paths:          make(map[string]bool),
		PromptModTimes: make(map[string]int64),
	}

	for _, codeFile := range result.CodeFiles {
		rel := resolver.Rel(codeFile)
		if isRootConfigPath(rel) {
			continue
		}
		disk.Paths[rel] = true
	}

	for _, promptFile := range result.PromptFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := resolver.Rel(promptFile)
		if info, err := os.Stat(promptFile); err == nil {
			disk.PromptModTimes[rel] = info.ModTime().UnixMilli()
		}

		raw, err := os.ReadFile(promptFile)
		if err != nil {
			logger.Warn().Err(err).Str("path", rel).Msg("unreadable prompt file, skipping")
			continue
		}
		content := string(raw)

		if parser.IsMasterPrompt(filepath.Base(promptFile), content) {
			continue
		}
		disk.Paths[resolver.TargetForPrompt(promptFile, content)] = true
	}

	return disk, nil
}

// Reseed rebuilds the persisted records from current disk content.
// Prompt files are processed first so prompt-derived metadata takes
// priority; leftover code files get code-only records in a second
// phase. Each file is its own upsert; failures are collected and
// reported, never fatal to the batch.
func (j *Job) Reseed(ctx context.Context) (*ReseedReport, error) {
	start := time.Now()

	result, err := scan.NewScanner(j.cfg).Scan()
	if err != nil {
		return nil, err
	}
	resolver := scan.NewResolver(j.cfg, result)

	log.Info().
		Int("codeFiles", len(result.CodeFiles)).
		Int("promptFiles", len(result.PromptFiles)).
		Str("root", j.cfg.Root).
		Msg("starting re-seed")

	report := &ReseedReport{ID: uuid.NewString()}
	touched := make(map[string]bool)

	// Phase 1: prompt files
	for _, promptFile := range result.PromptFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		j.reseedPromptFile(promptFile, resolver, report, touched)
	}

	// Phase 2: code files without a record from phase 1
	for _, codeFile := range result.CodeFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := resolver.Rel(codeFile)
		if touched[rel] || isRootConfigPath(rel) {
			continue
		}
		j.reseedCodeFile(codeFile, rel, report)
	}

	report.DurationMs = time.Since(start).Milliseconds()
	log.Info().
		Int("masters", report.Masters).
		Int("pages", report.Pages).
		Int("codeFiles", report.CodeFiles).
		Int("failures", report.Failures).
		Int64("durationMs", report.DurationMs).
		Msg("re-seed complete")
	return report, nil
}

// reseedPromptFile handles one prompt file: master prompts are upserted
// and skipped, page prompts replace the record at their resolved target.
func (j *Job) reseedPromptFile(promptFile string, resolver *scan.Resolver, report *ReseedReport, touched map[string]bool) {
	rel := resolver.Rel(promptFile)

	raw, err := os.ReadFile(promptFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", rel).Msg("failed to read prompt file")
		report.addFailure(Outcome{File: rel, Type: OutcomePage, Error: err.Error()})
		return
	}
	content := string(raw)
	target := resolver.TargetForPrompt(promptFile, content)

	if parser.IsMasterPrompt(filepath.Base(promptFile), content) {
		master := parser.ParseMaster(content)
		err := db.UpsertMasterPrompt(&db.MasterPrompt{
			PageFilePath:    target,
			NLPInstruction:  master.NLPInstruction,
			SectionsSummary: master.SectionsSummary,
			QueryExamples:   master.QueryExamples,
		})
		if err != nil {
			report.addFailure(Outcome{File: rel, Type: OutcomeMaster, Target: target, Error: err.Error()})
			return
		}
		report.Outcomes = append(report.Outcomes, Outcome{File: rel, Type: OutcomeMaster, Target: target})
		report.Masters++
		return
	}

	sections := parser.Parse(content)

	record := &db.FileRecord{
		Path:           target,
		Name:           path.Base(target),
		PromptFilePath: &rel,
		HasPrompt:      true,
	}

	// A missing target file is reported via a zero line count, not an error
	if codeRaw, err := os.ReadFile(resolver.Abs(target)); err == nil {
		record.RawContent = string(codeRaw)
		record.TotalLines = countLines(record.RawContent)
		record.HasCode = true
	}

	if err := db.ReplaceFileWithSections(record, toSectionRecords(target, sections)); err != nil {
		report.addFailure(Outcome{File: rel, Type: OutcomePage, Target: target, Error: err.Error()})
		return
	}
	touched[target] = true

	// Queue the prompt text for the search index; best-effort
	if err := db.QueueSearchDocument(target, searchContent(sections)); err != nil {
		logger.Warn().Err(err).Str("path", target).Msg("failed to queue search document")
	}

	report.Outcomes = append(report.Outcomes, Outcome{
		File:      rel,
		Type:      OutcomePage,
		Target:    target,
		Lines:     record.TotalLines,
		Sections:  len(sections),
		HasCode:   record.HasCode,
		HasPrompt: true,
	})
	report.Pages++
}

// reseedCodeFile creates a code-only record for a file no prompt claimed
func (j *Job) reseedCodeFile(codeFile, rel string, report *ReseedReport) {
	raw, err := os.ReadFile(codeFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", rel).Msg("failed to read code file")
		report.addFailure(Outcome{File: rel, Type: OutcomeCode, Error: err.Error()})
		return
	}

	record := &db.FileRecord{
		Path:       rel,
		Name:       path.Base(rel),
		RawContent: string(raw),
		TotalLines: countLines(string(raw)),
		HasCode:    true,
	}

	if err := db.ReplaceCodeOnlyFile(record); err != nil {
		report.addFailure(Outcome{File: rel, Type: OutcomeCode, Error: err.Error()})
		return
	}

	report.Outcomes = append(report.Outcomes, Outcome{
		File:    rel,
		Type:    OutcomeCode,
		Target:  rel,
		Lines:   record.TotalLines,
		HasCode: true,
	})
	report.CodeFiles++
}

// toSectionRecords converts parsed sections into their storage shape
func toSectionRecords(filePath string, sections []parser.Section) []db.SectionRecord {
	records := make([]db.SectionRecord, 0, len(sections))
	for i, sec := range sections {
		rec := db.SectionRecord{
			FilePath:  filePath,
			Position:  i,
			Name:      sec.Name,
			StartLine: sec.StartLine,
			EndLine:   sec.EndLine,
			Purpose:   sec.Purpose,
		}
		for pi, p := range sec.Prompts {
			rec.Prompts = append(rec.Prompts, db.PromptRecord{
				Position:   pi,
				Template:   p.Template,
				Example:    p.Example,
				LineNumber: p.LineNumber,
				PromptType: string(p.Type),
			})
		}
		records = append(records, rec)
	}
	return records
}

// searchContent flattens a file's sections into one indexable blob
func searchContent(sections []parser.Section) string {
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(sec.Name)
		b.WriteByte('\n')
		for _, p := range sec.Prompts {
			b.WriteString(p.Template)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
