package search

import (
	"reflect"
	"testing"
)

func TestIgnoreFilterMatchesNames(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		entry   string
		ignored bool
	}{
		{name: "suffix fast path", pattern: "*.pyc", entry: "module.pyc", ignored: true},
		{name: "suffix fast path miss", pattern: "*.pyc", entry: "module.py", ignored: false},
		{name: "prefix fast path", pattern: "build*", entry: "build-output", ignored: true},
		{name: "literal", pattern: "node_modules", entry: "node_modules", ignored: true},
		{name: "literal needs full name", pattern: "node_modules", entry: "node_modules2", ignored: false},
		{name: "question mark", pattern: "?.tmp", entry: "a.tmp", ignored: true},
		{name: "character class", pattern: "[ab].log", entry: "b.log", ignored: true},
		{name: "alternation", pattern: "*.{bak,swp}", entry: "notes.swp", ignored: true},
		{name: "alternation miss", pattern: "*.{bak,swp}", entry: "notes.txt", ignored: false},
		{name: "wildcard skips dotfiles", pattern: "*", entry: ".env", ignored: false},
		{name: "explicit dot pattern", pattern: ".*", entry: ".env", ignored: true},
		{name: "suffix skips dotfiles", pattern: "*.pyc", entry: ".pyc", ignored: false},
		{name: "negation", pattern: "!*.go", entry: "main.go", ignored: false},
		{name: "negation hides others", pattern: "!*.go", entry: "README", ignored: true},
		{name: "invalid glob is skipped", pattern: "[abc", entry: "[abc", ignored: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewIgnoreFilter([]string{tt.pattern}, nil)
			if got := f.Ignored(tt.entry); got != tt.ignored {
				t.Errorf("Ignored(%q) with %q = %v, want %v", tt.entry, tt.pattern, got, tt.ignored)
			}
		})
	}
}

func TestIgnoreFilterFilterPreservesOrder(t *testing.T) {
	f := NewIgnoreFilter([]string{"*.pyc", "*.pyo", "  ", ""}, nil)
	got := f.Filter([]string{"b.py", "a.pyc", "c.txt", "d.pyo", "a.py"})
	want := []string{"b.py", "c.txt", "a.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
	if pats := f.activePatterns(); !reflect.DeepEqual(pats, []string{"*.pyc", "*.pyo"}) {
		t.Fatalf("blank patterns should be dropped, got %v", pats)
	}
}

func TestIgnoreFilterReusesCompiledPatterns(t *testing.T) {
	f := NewIgnoreFilter([]string{"*.log"}, nil)
	first := f.compiled["*.log"]
	f.setPatterns([]string{"*.tmp", "*.log"})
	if f.compiled["*.log"] != first {
		t.Fatalf("expected compiled *.log to be reused")
	}
	if !f.Ignored("x.tmp") || !f.Ignored("x.log") {
		t.Fatalf("expected both patterns active after setPatterns")
	}
	f.setPatterns(nil)
	if f.Ignored("x.log") {
		t.Fatalf("expected no pattern to be active")
	}
}

func TestNilIgnoreFilter(t *testing.T) {
	var f *IgnoreFilter
	names := []string{"a", "b"}
	if f.Ignored("a") {
		t.Fatalf("nil filter must not ignore anything")
	}
	if got := f.Filter(names); !reflect.DeepEqual(got, names) {
		t.Fatalf("nil filter changed names: %v", got)
	}
}
