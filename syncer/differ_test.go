package syncer

import (
	"reflect"
	"testing"

	"github.com/promptdeck/promptdeck/db"
)

func strPtr(s string) *string { return &s }

func TestDiff_InSync(t *testing.T) {
	disk := DiskState{
		Paths: map[string]bool{
			"src/App.tsx":    true,
			"pages/Home.jsx": true,
		},
		PromptModTimes: map[string]int64{
			"src/App.txt": 1000,
		},
	}
	persisted := []db.SyncEntry{
		{Path: "src/App.tsx", PromptFilePath: strPtr("src/App.txt"), UpdatedAt: 2000},
		{Path: "pages/Home.jsx", UpdatedAt: 2000},
	}

	report := Diff(disk, persisted)

	if !report.InSync {
		t.Errorf("InSync = false, report = %+v", report)
	}
	if report.TotalChanges != 0 {
		t.Errorf("TotalChanges = %d, want 0", report.TotalChanges)
	}
}

func TestDiff_NewRemovedModified(t *testing.T) {
	disk := DiskState{
		Paths: map[string]bool{
			"src/App.tsx":  true, // modified (prompt newer)
			"src/New.tsx":  true, // not persisted
			"src/Same.tsx": true, // unchanged
		},
		PromptModTimes: map[string]int64{
			"src/App.txt":  5000,
			"src/Same.txt": 1000,
		},
	}
	persisted := []db.SyncEntry{
		{Path: "src/App.tsx", PromptFilePath: strPtr("src/App.txt"), UpdatedAt: 2000},
		{Path: "src/Same.tsx", PromptFilePath: strPtr("src/Same.txt"), UpdatedAt: 2000},
		{Path: "src/Gone.tsx", PromptFilePath: strPtr("src/Gone.txt"), UpdatedAt: 2000},
	}

	report := Diff(disk, persisted)

	if report.InSync {
		t.Error("InSync = true, want false")
	}
	if got, want := report.NewFiles, []string{"src/New.tsx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NewFiles = %v, want %v", got, want)
	}
	if got, want := report.RemovedFiles, []string{"src/Gone.tsx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RemovedFiles = %v, want %v", got, want)
	}
	if got, want := report.ModifiedFiles, []string{"src/App.tsx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ModifiedFiles = %v, want %v", got, want)
	}
	if report.TotalChanges != 3 {
		t.Errorf("TotalChanges = %d, want 3", report.TotalChanges)
	}
}

func TestDiff_RemovedEntrySkipsModifiedCheck(t *testing.T) {
	// An entry missing from disk must appear once, in RemovedFiles,
	// even when a stale prompt mtime would also flag it as modified.
	disk := DiskState{
		Paths: map[string]bool{},
		PromptModTimes: map[string]int64{
			"src/Gone.txt": 9999,
		},
	}
	persisted := []db.SyncEntry{
		{Path: "src/Gone.tsx", PromptFilePath: strPtr("src/Gone.txt"), UpdatedAt: 1},
	}

	report := Diff(disk, persisted)

	if got, want := report.RemovedFiles, []string{"src/Gone.tsx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RemovedFiles = %v, want %v", got, want)
	}
	if len(report.ModifiedFiles) != 0 {
		t.Errorf("ModifiedFiles = %v, want empty", report.ModifiedFiles)
	}
}

func TestDiff_EqualMtimeIsNotModified(t *testing.T) {
	disk := DiskState{
		Paths:          map[string]bool{"src/App.tsx": true},
		PromptModTimes: map[string]int64{"src/App.txt": 2000},
	}
	persisted := []db.SyncEntry{
		{Path: "src/App.tsx", PromptFilePath: strPtr("src/App.txt"), UpdatedAt: 2000},
	}

	report := Diff(disk, persisted)
	if len(report.ModifiedFiles) != 0 {
		t.Errorf("ModifiedFiles = %v, want empty", report.ModifiedFiles)
	}
	if !report.InSync {
		t.Error("InSync = false, want true")
	}
}

func TestDiff_SortedOutput(t *testing.T) {
	disk := DiskState{
		Paths: map[string]bool{
			"z.tsx": true,
			"a.tsx": true,
			"m.tsx": true,
		},
	}

	report := Diff(disk, nil)
	want := []string{"a.tsx", "m.tsx", "z.tsx"}
	if !reflect.DeepEqual(report.NewFiles, want) {
		t.Errorf("NewFiles = %v, want %v", report.NewFiles, want)
	}
}

func TestIsRootConfigPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"package.json", true},
		{"package-lock.json", true},
		{"tsconfig.json", true},
		{"vite.config.ts", true},
		{"webpack.Config.js", true},
		{"setupEnv.ts", true},
		{".env.local", true},
		{"src/config.ts", false},
		{"src/env.ts", false},
		{"App.tsx", false},
		{"index.js", false},
	}

	for _, tt := range tests {
		if got := isRootConfigPath(tt.path); got != tt.want {
			t.Errorf("isRootConfigPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
