package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/promptdeck/promptdeck/log"
)

var logger = log.GetLogger("Scan")

// Result holds one scan's classification of the project tree. It is
// recomputed on every call and never cached. Ordering is traversal order
// and is not guaranteed stable; callers must not depend on it for
// correctness.
type Result struct {
	CodeFiles   []string
	PromptFiles []string
}

// Scanner walks a project root and classifies files as code or prompt
type Scanner struct {
	cfg Config
}

// NewScanner creates a scanner for the given configuration
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan recursively visits the root, skipping configured directory names
// and anything dot-prefixed. Unreadable directories are logged and
// skipped; the walk continues with their siblings.
func (s *Scanner) Scan() (*Result, error) {
	if _, err := os.Stat(s.cfg.Root); err != nil {
		return nil, err
	}

	res := &Result{}
	s.walk(s.cfg.Root, res)
	return res, nil
}

func (s *Scanner) walk(dir string, res *Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("unreadable directory, skipping")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.skipDir(name) {
				continue
			}
			s.walk(full, res)
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case s.isCodeExt(ext):
			res.CodeFiles = append(res.CodeFiles, full)
		case ext == s.cfg.PromptExt:
			res.PromptFiles = append(res.PromptFiles, full)
		}
	}
}

func (s *Scanner) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return s.cfg.SkipDirs[name]
}

func (s *Scanner) isCodeExt(ext string) bool {
	for _, e := range s.cfg.CodeExts {
		if ext == e {
			return true
		}
	}
	return false
}
