package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// fileDirective matches an explicit "FILE: <path>" override inside a
// prompt file. The value ends at whitespace or a pipe.
var fileDirective = regexp.MustCompile(`(?i)FILE:\s*([^\s|]+)`)

// Resolver maps between prompt files and the code files they document.
// It is built from one scan result; all paths it returns are relative to
// the project root with forward slashes.
type Resolver struct {
	cfg         Config
	codeFiles   map[string]bool
	promptFiles map[string]bool
}

// NewResolver creates a resolver over a scan result
func NewResolver(cfg Config, res *Result) *Resolver {
	r := &Resolver{
		cfg:         cfg,
		codeFiles:   make(map[string]bool, len(res.CodeFiles)),
		promptFiles: make(map[string]bool, len(res.PromptFiles)),
	}
	for _, f := range res.CodeFiles {
		r.codeFiles[r.Rel(f)] = true
	}
	for _, f := range res.PromptFiles {
		r.promptFiles[r.Rel(f)] = true
	}
	return r
}

// Rel converts a path under the project root to its canonical
// root-relative form with forward slashes
func (r *Resolver) Rel(path string) string {
	rel, err := filepath.Rel(r.cfg.Root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// Abs converts a root-relative path back to an absolute one
func (r *Resolver) Abs(rel string) string {
	return filepath.Join(r.cfg.Root, filepath.FromSlash(rel))
}

// TargetForPrompt resolves the code file a prompt file documents.
//
// An explicit FILE: directive in the content wins. Otherwise the prompt
// extension is replaced with each code extension in priority order and
// checked against the known code-file set; when nothing matches, the
// first code extension yields a deterministic placeholder target (the
// file need not exist yet).
func (r *Resolver) TargetForPrompt(promptPath, content string) string {
	if m := fileDirective.FindStringSubmatch(content); m != nil {
		return strings.ReplaceAll(m[1], `\`, "/")
	}

	rel := r.Rel(promptPath)
	base := strings.TrimSuffix(rel, r.cfg.PromptExt)

	for _, ext := range r.cfg.CodeExts {
		candidate := base + ext
		if r.codeFiles[candidate] {
			return candidate
		}
	}

	return base + r.cfg.CodeExts[0]
}

// PromptForCode returns the prompt companion path for a code file and
// whether that prompt file actually exists in this scan
func (r *Resolver) PromptForCode(codePath string) (string, bool) {
	rel := r.Rel(codePath)
	ext := strings.ToLower(filepath.Ext(rel))
	companion := strings.TrimSuffix(rel, ext) + r.cfg.PromptExt
	return companion, r.promptFiles[companion]
}

// HasCodeFile reports whether a root-relative path was classified as a
// code file by the scan this resolver was built from
func (r *Resolver) HasCodeFile(rel string) bool {
	return r.codeFiles[rel]
}
