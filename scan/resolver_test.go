package scan

import (
	"path/filepath"
	"testing"
)

func newTestResolver(root string, codeFiles, promptFiles []string) *Resolver {
	res := &Result{}
	for _, f := range codeFiles {
		res.CodeFiles = append(res.CodeFiles, filepath.Join(root, filepath.FromSlash(f)))
	}
	for _, f := range promptFiles {
		res.PromptFiles = append(res.PromptFiles, filepath.Join(root, filepath.FromSlash(f)))
	}
	return NewResolver(Default(root), res)
}

func TestTargetForPrompt(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(root,
		[]string{"src/App.tsx", "src/util.js", "pages/Home.jsx"},
		[]string{"src/App.txt", "pages/Home.txt", "docs/Orphan.txt"},
	)

	tests := []struct {
		name    string
		prompt  string
		content string
		want    string
	}{
		{
			name:   "extension priority finds tsx",
			prompt: "src/App.txt",
			want:   "src/App.tsx",
		},
		{
			name:   "extension priority finds jsx",
			prompt: "pages/Home.txt",
			want:   "pages/Home.jsx",
		},
		{
			name:   "placeholder when no code file exists",
			prompt: "docs/Orphan.txt",
			want:   "docs/Orphan.js",
		},
		{
			name:    "file directive overrides derivation",
			prompt:  "src/App.txt",
			content: "PURPOSE: x\nFILE: components/Nav.tsx | extra",
			want:    "components/Nav.tsx",
		},
		{
			name:    "file directive normalizes backslashes",
			prompt:  "src/App.txt",
			content: `FILE: src\nested\Widget.jsx`,
			want:    "src/nested/Widget.jsx",
		},
		{
			name:    "case insensitive directive",
			prompt:  "src/App.txt",
			content: "file: lower/case.ts",
			want:    "lower/case.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs := filepath.Join(root, filepath.FromSlash(tt.prompt))
			if got := r.TargetForPrompt(abs, tt.content); got != tt.want {
				t.Errorf("TargetForPrompt(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestPromptForCode(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(root,
		[]string{"src/App.tsx", "src/loose.ts"},
		[]string{"src/App.txt"},
	)

	companion, ok := r.PromptForCode(filepath.Join(root, "src", "App.tsx"))
	if companion != "src/App.txt" || !ok {
		t.Errorf("PromptForCode(App.tsx) = %q, %v", companion, ok)
	}

	companion, ok = r.PromptForCode(filepath.Join(root, "src", "loose.ts"))
	if companion != "src/loose.txt" || ok {
		t.Errorf("PromptForCode(loose.ts) = %q, %v", companion, ok)
	}
}

func TestHasCodeFile(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(root, []string{"src/App.tsx"}, nil)

	if !r.HasCodeFile("src/App.tsx") {
		t.Error("expected src/App.tsx to be known")
	}
	if r.HasCodeFile("src/Missing.tsx") {
		t.Error("did not expect src/Missing.tsx to be known")
	}
}
