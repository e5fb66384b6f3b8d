package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// FunctionName is the shell function the setup snippet defines.
const FunctionName = "ro"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the ropen binary path written into the snippet.
	Executable string
}

// PrintSetup writes a shell function that runs ropen in print mode and opens
// the chosen path with $VISUAL or $EDITOR from the calling shell.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	rpath := cfg.Executable
	if rpath == "" {
		if exe, err := os.Executable(); err == nil {
			rpath = exe
		} else {
			rpath = "ropen"
		}
	}
	quoted := strconv.Quote(rpath)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function %[1]s
    set -l target (command %[2]s --print $argv)
    or return $status
    test -n "$target"; or return 0
    set -l editor $VISUAL
    test -n "$editor"; or set editor $EDITOR
    test -n "$editor"; or set editor vi
    eval $editor (string escape -- $target)
end
`, FunctionName, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, `function %[1]s {
    $target = & %[2]s --print @args
    if ($LASTEXITCODE -ne 0 -or [string]::IsNullOrEmpty($target)) {
        return
    }
    $editor = if ($env:VISUAL) { $env:VISUAL } elseif ($env:EDITOR) { $env:EDITOR } else { "notepad" }
    & $editor $target
}
`, FunctionName, quoted)
	default:
		_, err = fmt.Fprintf(w, `%[1]s() {
    target=$(command %[2]s --print "$@") || return $?
    [ -n "$target" ] || return 0
    ${VISUAL:-${EDITOR:-vi}} "$target"
}
`, FunctionName, quoted)
	}
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
