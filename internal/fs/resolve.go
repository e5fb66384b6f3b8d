package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/ropen/internal/fspath"
)

// Resolver turns typed paths into absolute ones. A leading "~" expands to
// Home, rooted paths are kept and everything else is relative to the primary
// project directory (or Cwd when there is no project).
type Resolver struct {
	Home     string
	Cwd      string
	Projects func() []string
}

// NewResolver builds a resolver from the process environment.
func NewResolver(projects func() []string) *Resolver {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return &Resolver{Home: home, Cwd: cwd, Projects: projects}
}

// Base returns the directory relative paths are resolved against.
func (r *Resolver) Base() string {
	if r.Projects != nil {
		if dirs := r.Projects(); len(dirs) > 0 && dirs[0] != "" {
			return dirs[0]
		}
	}
	return r.Cwd
}

// Absolute implements fspath.Resolver.
func (r *Resolver) Absolute(text string) string {
	sep := string(fspath.PreferredSeparator(text))
	if strings.HasPrefix(text, "~"+sep) {
		return r.Home + sep + text[2:]
	}
	if strings.HasPrefix(text, sep) || filepath.IsAbs(text) {
		return text
	}

	joined := filepath.Join(r.Base(), text)
	if text != "" && strings.HasSuffix(text, sep) && !strings.HasSuffix(joined, string(filepath.Separator)) {
		joined += string(filepath.Separator)
	}
	return joined
}
