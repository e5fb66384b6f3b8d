//go:build !windows

package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
	"github.com/kk-code-lab/ropen/internal/search"
)

type openCall struct {
	path  string
	split Split
}

type notice struct {
	title  string
	detail string
}

type fakeHost struct {
	active    string
	projects  []string
	opened    []openCall
	openErr   error
	successes []notice
	failures  []notice
	beeps     int
	clipboard string
	clipErr   error
}

func (h *fakeHost) ActiveFilePath() string       { return h.active }
func (h *fakeHost) ProjectDirectories() []string { return append([]string(nil), h.projects...) }
func (h *fakeHost) AddProjectDirectory(abs string) {
	h.projects = append(h.projects, abs)
}
func (h *fakeHost) OpenPath(abs string, split Split) error {
	if h.openErr != nil {
		return h.openErr
	}
	h.opened = append(h.opened, openCall{path: abs, split: split})
	return nil
}
func (h *fakeHost) NotifySuccess(title, detail string) {
	h.successes = append(h.successes, notice{title: title, detail: detail})
}
func (h *fakeHost) NotifyError(title, detail string) {
	h.failures = append(h.failures, notice{title: title, detail: detail})
}
func (h *fakeHost) Beep() { h.beeps++ }
func (h *fakeHost) CopyToClipboard(text string) error {
	if h.clipErr != nil {
		return h.clipErr
	}
	h.clipboard = text
	return nil
}

var errFake = errors.New("fake failure")

type fixture struct {
	root     string
	home     string
	host     *fakeHost
	reducer  *StateReducer
	session  *Session
	events   []string
	resolver *fsutil.Resolver
}

// newFixture builds a reducer over a temp directory. Files are created from
// the given relative paths; names ending in "/" become directories.
func newFixture(t *testing.T, opts Options, entries ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	for _, entry := range entries {
		full := filepath.Join(root, entry)
		if entry[len(entry)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}

	f := &fixture{root: root, home: filepath.Join(root, "home", "alice"), host: &fakeHost{}}
	f.resolver = &fsutil.Resolver{Home: f.home, Cwd: root, Projects: f.host.ProjectDirectories}
	engine := search.NewEngine(fsutil.OS{}, f.resolver, search.EngineConfig{
		Ignore: search.NewIgnoreFilter([]string{"*.pyc", "*.pyo"}, nil),
		Cache:  search.NewCache(),
	})
	events := NewEvents()
	events.OnDidCreatePath(func(p string) { f.events = append(f.events, "create:"+p) })
	events.OnDidOpenPath(func(p string) { f.events = append(f.events, "open:"+p) })

	f.reducer = NewStateReducer(ReducerConfig{
		Engine:  engine,
		Creator: fsutil.OS{},
		Host:    f.host,
		Events:  events,
		Options: opts,
		Home:    f.home,
	})
	f.session = NewSession()
	return f
}

func (f *fixture) path(rel string) string {
	return f.root + "/" + rel
}

func (f *fixture) dispatch(t *testing.T, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		if _, err := f.reducer.Reduce(f.session, action); err != nil {
			t.Fatalf("Reduce(%T) failed: %v", action, err)
		}
	}
}

// openAt opens the picker and moves it to text without touching history.
func (f *fixture) openAt(t *testing.T, text string) {
	t.Helper()
	f.host.projects = []string{f.root}
	f.dispatch(t, ToggleAction{}, UpdatePathAction{Path: fspath.Parse(text)})
	if !f.session.Open {
		t.Fatalf("expected session to be open")
	}
}

func labels(items []ListItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label()
	}
	return out
}
