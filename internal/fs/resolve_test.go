//go:build !windows

package fs

import "testing"

func TestResolverAbsolute(t *testing.T) {
	projects := []string{"/work/proj", "/work/other"}
	r := &Resolver{
		Home:     "/home/alice",
		Cwd:      "/tmp/cwd",
		Projects: func() []string { return projects },
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "~/notes.txt", want: "/home/alice/notes.txt"},
		{input: "~/", want: "/home/alice/"},
		{input: "/etc/hosts", want: "/etc/hosts"},
		{input: "/", want: "/"},
		{input: "src/main.go", want: "/work/proj/src/main.go"},
		{input: "src/", want: "/work/proj/src/"},
		{input: "", want: "/work/proj"},
		{input: "../up", want: "/work/up"},
	}
	for _, tt := range tests {
		if got := r.Absolute(tt.input); got != tt.want {
			t.Fatalf("Absolute(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolverFallsBackToCwd(t *testing.T) {
	r := &Resolver{Home: "/home/alice", Cwd: "/tmp/cwd"}
	if got := r.Absolute("file.txt"); got != "/tmp/cwd/file.txt" {
		t.Fatalf("expected cwd-relative path, got %q", got)
	}
}
