package shellsetup

import (
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestPrintSetupWritesPrintModeFunction(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{shell: "bash", want: []string{"ro() {", `"/opt/bin/ropen" --print "$@"`, "${VISUAL:-${EDITOR:-vi}}"}},
		{shell: "/usr/bin/zsh", want: []string{"ro() {", "--print"}},
		{shell: "fish", want: []string{"function ro", `"/opt/bin/ropen" --print $argv`}},
		{shell: "powershell.exe", want: []string{"function ro {", `& "/opt/bin/ropen" --print @args`}},
		{shell: "tcsh", want: []string{"ro() {"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out strings.Builder
			err := PrintSetup(&out, tt.shell, Config{
				Executable:   "/opt/bin/ropen",
				DetectParent: func() string { return "" },
			})
			if err != nil {
				t.Fatalf("PrintSetup returned error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("snippet for %s missing %q:\n%s", tt.shell, want, out.String())
				}
			}
		})
	}
}
