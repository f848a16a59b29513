package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the scanning rules for one project root. Components take
// this value explicitly; nothing in this package reads the environment.
type Config struct {
	// Root is the absolute project root directory
	Root string

	// SkipDirs are directory names never descended into. Names starting
	// with "." are always skipped regardless of this set.
	SkipDirs map[string]bool

	// CodeExts are the recognized source extensions, in priority order.
	// The first entry is the placeholder extension when no code file
	// matches a prompt file.
	CodeExts []string

	// PromptExt is the single prompt file extension
	PromptExt string
}

// defaultSkipDirs covers dependency caches, build output, VCS metadata
// and output directories of earlier prompt tooling.
var defaultSkipDirs = map[string]bool{
	"node_modules":      true,
	"dist":              true,
	"build":             true,
	"out":               true,
	"coverage":          true,
	"vendor":            true,
	"generated-prompts": true,
}

// Default returns the standard configuration for a project root
func Default(root string) Config {
	skip := make(map[string]bool, len(defaultSkipDirs))
	for k, v := range defaultSkipDirs {
		skip[k] = v
	}
	return Config{
		Root:      root,
		SkipDirs:  skip,
		CodeExts:  []string{".js", ".jsx", ".ts", ".tsx"},
		PromptExt: ".txt",
	}
}

// ResolveRoot returns the first candidate directory that contains the
// marker subdirectory. Used at startup to locate the project root when
// the configured root is ambiguous.
func ResolveRoot(candidates []string, marker string) (string, error) {
	for _, dir := range candidates {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no candidate directory contains %q", marker)
}
