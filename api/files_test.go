package api

import "testing"

func TestCleanRelPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/src/App.tsx", "src/App.tsx", true},
		{"src/App.txt", "src/App.txt", true},
		{"/a/b/../c.ts", "a/c.ts", true},
		{"/./src/App.tsx", "src/App.tsx", true},
		{"", "", false},
		{"/", "", false},
		{"/..", "", false},
		{"/../etc/passwd", "", false},
		{"/a/../../escape.ts", "", false},
	}

	for _, tt := range tests {
		got, ok := cleanRelPath(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("cleanRelPath(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
