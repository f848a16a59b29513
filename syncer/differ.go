package syncer

import (
	"sort"
	"strings"

	"github.com/promptdeck/promptdeck/db"
)

// DiskState is the canonical view of the project tree for one sync
// check: the set of target paths that should have records, and the
// modification times of the prompt files on disk.
type DiskState struct {
	// Paths holds every target path derived from disk: code file paths
	// (minus root config files) plus resolved prompt targets (minus
	// master prompts). Keys are root-relative with forward slashes.
	Paths map[string]bool

	// PromptModTimes maps prompt file paths to mtime in epoch ms
	PromptModTimes map[string]int64
}

// knownConfigNames are root-level files never tracked as pages
var knownConfigNames = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
	"tsconfig.json":     true,
}

// isRootConfigPath reports whether a root-relative path is a top-level
// configuration file excluded from the sync set
func isRootConfigPath(rel string) bool {
	if strings.Contains(rel, "/") {
		return false
	}
	lower := strings.ToLower(rel)
	return strings.Contains(lower, "config") || strings.Contains(lower, "env") || knownConfigNames[lower]
}

// Diff compares the disk state against the persisted snapshot. It never
// mutates either side.
//
// A persisted entry is modified when its linked prompt file's on-disk
// mtime is strictly newer than the entry's last write; an entry whose
// prompt file is gone shows up in RemovedFiles only (via its path), not
// in ModifiedFiles.
func Diff(disk DiskState, persisted []db.SyncEntry) SyncReport {
	persistedPaths := make(map[string]bool, len(persisted))
	for _, e := range persisted {
		persistedPaths[e.Path] = true
	}

	report := SyncReport{
		NewFiles:      []string{},
		RemovedFiles:  []string{},
		ModifiedFiles: []string{},
	}

	for p := range disk.Paths {
		if !persistedPaths[p] {
			report.NewFiles = append(report.NewFiles, p)
		}
	}

	for _, e := range persisted {
		if !disk.Paths[e.Path] {
			report.RemovedFiles = append(report.RemovedFiles, e.Path)
			continue
		}
		if e.PromptFilePath == nil {
			continue
		}
		if mtime, ok := disk.PromptModTimes[*e.PromptFilePath]; ok && mtime > e.UpdatedAt {
			report.ModifiedFiles = append(report.ModifiedFiles, e.Path)
		}
	}

	sort.Strings(report.NewFiles)
	sort.Strings(report.RemovedFiles)
	sort.Strings(report.ModifiedFiles)

	report.TotalChanges = len(report.NewFiles) + len(report.RemovedFiles) + len(report.ModifiedFiles)
	report.InSync = report.TotalChanges == 0
	return report
}
