package search

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFilter hides entry names matching any of its glob patterns. Compiled
// globs are cached by pattern text for the lifetime of the filter, so a
// changed pattern list only compiles the new entries.
type IgnoreFilter struct {
	mu       sync.Mutex
	patterns []string
	compiled map[string]*globPattern
	logger   *slog.Logger
}

type globPattern struct {
	pattern  string // pattern with any leading "!" removed
	negation bool
	invalid  bool
	literal  string // exact literal match (no wildcards)
	prefix   string // simple prefix match (foo*)
	suffix   string // simple suffix match (*foo)
}

// NewIgnoreFilter compiles patterns. Invalid globs are logged and skipped.
func NewIgnoreFilter(patterns []string, logger *slog.Logger) *IgnoreFilter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	f := &IgnoreFilter{
		compiled: make(map[string]*globPattern),
		logger:   logger,
	}
	f.setPatterns(patterns)
	return f
}

// setPatterns replaces the active pattern list, reusing cached compilations.
func (f *IgnoreFilter) setPatterns(patterns []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.patterns = f.patterns[:0]
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if _, ok := f.compiled[raw]; !ok {
			g := compileGlob(raw)
			if g.invalid {
				f.logger.Warn("ignoring invalid glob", "pattern", raw)
			}
			f.compiled[raw] = g
		}
		f.patterns = append(f.patterns, raw)
	}
}

// activePatterns returns the active glob strings.
func (f *IgnoreFilter) activePatterns() []string {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.patterns...)
}

// Ignored reports whether name matches any active pattern.
func (f *IgnoreFilter) Ignored(name string) bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, raw := range f.patterns {
		if g := f.compiled[raw]; g != nil && g.match(name) {
			return true
		}
	}
	return false
}

// Filter returns the names that are not ignored, preserving order.
func (f *IgnoreFilter) Filter(names []string) []string {
	if f == nil || len(f.activePatterns()) == 0 {
		return names
	}
	visible := make([]string, 0, len(names))
	for _, name := range names {
		if !f.Ignored(name) {
			visible = append(visible, name)
		}
	}
	return visible
}

func compileGlob(raw string) *globPattern {
	g := &globPattern{pattern: raw}
	if strings.HasPrefix(raw, "!") && len(raw) > 1 {
		g.negation = true
		g.pattern = raw[1:]
	}
	if !doublestar.ValidatePattern(g.pattern) {
		g.invalid = true
		return g
	}

	line := g.pattern
	if strings.ContainsRune(line, '\\') || strings.ContainsAny(line, "{") {
		return g
	}
	if !strings.ContainsAny(line, "*?[") {
		g.literal = line
		return g
	}
	if strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "**") {
		rest := line[1:]
		if rest != "" && !strings.ContainsAny(rest, "*?[/") {
			g.suffix = rest
		}
	}
	if strings.HasSuffix(line, "*") && !strings.HasSuffix(line, "**") {
		start := line[:len(line)-1]
		if start != "" && !strings.ContainsAny(start, "*?[/") {
			g.prefix = start
		}
	}
	return g
}

func (g *globPattern) match(name string) bool {
	if g.invalid {
		return false
	}
	return g.matchPattern(name) != g.negation
}

func (g *globPattern) matchPattern(name string) bool {
	if g.literal != "" {
		return name == g.literal
	}
	// Wildcards do not match a leading dot unless the pattern spells it out.
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(g.pattern, ".") {
		return false
	}
	if g.suffix != "" {
		return strings.HasSuffix(name, g.suffix)
	}
	if g.prefix != "" {
		return strings.HasPrefix(name, g.prefix)
	}
	matched, err := doublestar.Match(g.pattern, name)
	return err == nil && matched
}
