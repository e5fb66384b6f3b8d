package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	statepkg "github.com/kk-code-lab/ropen/internal/state"
)

// DetectEditorCommand resolves the editor used to open files. override (the
// config file's editor key) wins over $VISUAL and $EDITOR.
func DetectEditorCommand(override string) ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, override, os.Getenv, exec.LookPath)
}

func detectEditorCommandInternal(goos string, override string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	candidates := []string{override, getenv("VISUAL"), getenv("EDITOR")}

	for _, candidate := range candidates {
		args := parseEditorCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveEditorExecutableWithLookup(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{
			{"code", "--wait"},
			{"notepad++.exe"},
			{"notepad.exe"},
		}
	} else {
		defaults = [][]string{
			{"vim"},
			{"nano"},
		}
	}

	for _, def := range defaults {
		if len(def) == 0 {
			continue
		}
		if resolved, ok := resolveEditorExecutableWithLookup(def[0], lookPath); ok {
			args := append([]string{resolved}, def[1:]...)
			return args, true
		}
	}

	return nil, false
}

func parseEditorCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

func resolveEditorExecutableWithLookup(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}

	path, err := lookPath(cmd)
	if err != nil {
		return "", false
	}
	return path, true
}

// editorArgs builds the command line that opens req. Vim-family editors
// place the file in a split next to the active file when one was asked for;
// every other editor just gets the path.
func editorArgs(editor []string, activeFile string, req OpenRequest) []string {
	args := append([]string(nil), editor...)
	if req.Split == statepkg.SplitNone || activeFile == "" || activeFile == req.Path || !isVimFamily(editor[0]) {
		return append(args, req.Path)
	}

	switch req.Split {
	case statepkg.SplitLeft:
		args = append(args, "-O", req.Path, activeFile)
	case statepkg.SplitRight:
		args = append(args, "-O", activeFile, req.Path, "-c", "wincmd l")
	case statepkg.SplitUp:
		args = append(args, "-o", req.Path, activeFile)
	case statepkg.SplitDown:
		args = append(args, "-o", activeFile, req.Path, "-c", "wincmd j")
	}
	return args
}

func isVimFamily(cmd string) bool {
	base := strings.ToLower(filepath.Base(cmd))
	base = strings.TrimSuffix(base, ".exe")
	switch base {
	case "vi", "vim", "nvim", "gvim", "mvim", "view":
		return true
	}
	return false
}
