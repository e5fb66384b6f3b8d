package state

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
	"github.com/kk-code-lab/ropen/internal/search"
)

// Options are the behaviour switches the state machine reads.
type Options struct {
	CreateDirectories   bool
	CreateFileInstantly bool
	HelmDirSwitch       bool
	DefaultInputValue   fspath.InitialPolicy
	FuzzyMatch          bool
}

// Creator is the write side of the filesystem used by the open flow.
type Creator interface {
	CreateDirectoriesFor(absDir string) error
	CreateEmptyFile(abs string) error
}

// ReducerConfig wires a StateReducer.
type ReducerConfig struct {
	Engine  *search.Engine
	Creator Creator
	Host    Host
	Events  *Events
	Options Options
	// Home is the target of the "~/" shortcut.
	Home   string
	Logger *slog.Logger
}

// StateReducer applies actions to a Session.
type StateReducer struct {
	engine   *search.Engine
	resolver fspath.Resolver
	creator  Creator
	host     Host
	events   *Events
	opts     Options
	home     string
	logger   *slog.Logger
}

// NewStateReducer creates a new reducer
func NewStateReducer(cfg ReducerConfig) *StateReducer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	events := cfg.Events
	if events == nil {
		events = NewEvents()
	}
	return &StateReducer{
		engine:   cfg.Engine,
		resolver: cfg.Engine.Resolver(),
		creator:  cfg.Creator,
		host:     cfg.Host,
		events:   events,
		opts:     cfg.Options,
		home:     cfg.Home,
		logger:   logger,
	}
}

// Events returns the emitter outside subscribers register with.
func (r *StateReducer) Events() *Events {
	return r.events
}

// Reduce applies action to state. Rejected actions beep and leave the state
// untouched; they are not errors.
func (r *StateReducer) Reduce(state *Session, action Action) (*Session, error) {
	switch a := action.(type) {

	// ===== LIFECYCLE =====

	case ToggleAction:
		if state.Open {
			r.close(state)
		} else {
			r.open(state)
		}
		return state, nil

	case CloseAction:
		r.close(state)
		return state, nil

	// ===== PATH =====

	case PathChangeAction:
		r.pathChange(state, a.Path)
		return state, nil

	case UpdatePathAction:
		r.updatePath(state, a.Path, a.SaveHistory)
		return state, nil

	case SelectPathAction:
		r.selectPath(state, a.Path, a.Split)
		return state, nil

	case ClickPathAction:
		r.selectPath(state, a.Path, SplitNone)
		return state, nil

	case DeletePathComponentAction:
		if state.CurrentPath.IsRoot(r.resolver) {
			r.reject("already at root")
			return state, nil
		}
		r.updatePath(state, state.CurrentPath.Parent(r.resolver), true)
		return state, nil

	case AutocompleteAction:
		next, ok := r.engine.Autocomplete(state.CurrentPath, r.matchOptions())
		if !ok {
			r.reject("nothing to complete")
			return state, nil
		}
		r.updatePath(state, next, true)
		return state, nil

	case UndoAction:
		if n := len(state.History); n > 0 {
			prev := state.History[n-1]
			state.History = state.History[:n-1]
			r.updatePath(state, prev, false)
			return state, nil
		}
		initial := r.initialPath()
		if state.CurrentPath.Equals(initial) {
			r.reject("nothing to undo")
			return state, nil
		}
		r.updatePath(state, initial, false)
		return state, nil

	// ===== CURSOR =====

	case MoveCursorAction:
		n := len(state.Items)
		if n == 0 {
			state.Cursor = -1
			return state, nil
		}
		idx := state.Cursor
		switch a.Direction {
		case "down":
			if idx < 0 || idx >= n-1 {
				idx = 0
			} else {
				idx++
			}
		case "up":
			if idx <= 0 || idx >= n {
				idx = n - 1
			} else {
				idx--
			}
		}
		state.setCursor(idx)
		return state, nil

	case MoveCursorTopAction:
		state.setCursor(0)
		return state, nil

	case MoveCursorBottomAction:
		state.setCursor(len(state.Items) - 1)
		return state, nil

	// ===== CONFIRM =====

	case ConfirmAction:
		target := state.CurrentPath
		if item, ok := state.SelectedItem(); ok {
			target = item.Path
		}
		r.selectPath(state, target, a.Split)
		return state, nil

	case ConfirmSelectedOrFirstAction:
		target := state.CurrentPath
		if item, ok := state.SelectedItem(); ok {
			target = item.Path
		} else if first, ok := state.FirstPath(); ok {
			target = first
		}
		r.selectPath(state, target, SplitNone)
		return state, nil

	// ===== PROJECT =====

	case AddProjectFolderAction:
		r.addProjectFolder(state, a.Path)
		return state, nil

	case AddSelectedProjectFolderAction:
		item, selected := state.SelectedItem()
		switch {
		case !selected && r.engine.Kind(state.CurrentPath) == fsutil.KindDirectory:
			r.addProjectFolder(state, state.CurrentPath)
		case selected && !item.Parent:
			r.addProjectFolder(state, item.Path)
		default:
			r.reject("no folder to add")
		}
		return state, nil

	case CopyPathAction:
		r.copyPath(state)
		return state, nil

	// ===== INPUT =====

	case InputCharAction:
		state.Input = insertRune(state.Input, a.Char)
		r.pathChange(state, fspath.Parse(state.Input.Text))
		return state, nil

	case InputBackspaceAction:
		next, changed := backspace(state.Input)
		if !changed {
			return state, nil
		}
		state.Input = next
		r.pathChange(state, fspath.Parse(state.Input.Text))
		return state, nil

	case InputDeleteAction:
		next, changed := deleteForward(state.Input)
		if !changed {
			return state, nil
		}
		state.Input = next
		r.pathChange(state, fspath.Parse(state.Input.Text))
		return state, nil

	case InputMoveCaretAction:
		state.Input = moveCaret(state.Input, a.Direction)
		return state, nil

	case InputSetTextAction:
		state.setInputText(a.Text)
		r.pathChange(state, fspath.Parse(a.Text))
		return state, nil

	// ===== ASYNC =====

	case CandidatesLoadedAction:
		if a.Token != state.ActiveLoadToken() || !a.Path.Equals(state.CurrentPath) {
			return state, nil
		}
		state.loadToken = 0
		state.Loading = false
		state.Items = a.Items
		state.Cursor = -1
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) open(state *Session) {
	initial := r.initialPath()
	state.Open = true
	state.History = nil
	state.CurrentPath = initial
	r.updatePath(state, initial, false)
	r.logger.Debug("picker opened", "path", initial.Full)
}

func (r *StateReducer) close(state *Session) {
	if !state.Open {
		return
	}
	if token := state.loadToken; token != 0 && state.CandidateLoader != nil {
		state.CandidateLoader.Cancel(token)
	}
	state.Open = false
	state.History = nil
	state.Items = nil
	state.Cursor = -1
	state.Loading = false
	state.loadToken = 0
	r.engine.Cache().Clear()
	r.logger.Debug("picker closed")
}

// pathChange handles an edit of the input. Typed shortcuts jump and are
// recorded in history; plain typing is not.
func (r *StateReducer) pathChange(state *Session, newPath fspath.Path) {
	if r.opts.HelmDirSwitch {
		if target, ok := r.shortcutTarget(newPath); ok {
			r.logger.Debug("shortcut", "from", newPath.Full, "to", target.Full)
			r.updatePath(state, target, true)
			return
		}
	}
	r.updatePath(state, newPath, false)
}

func (r *StateReducer) shortcutTarget(p fspath.Path) (fspath.Path, bool) {
	sep := string(p.Sep)
	switch {
	case p.HasShortcut(""):
		return p.Root(r.resolver), true
	case p.HasShortcut("~"):
		if r.home == "" {
			return p, false
		}
		return fspath.Parse(withSeparator(r.home, sep)), true
	case p.HasShortcut(":"):
		project := r.projectRoot()
		if project == "" {
			return p, false
		}
		return fspath.Parse(withSeparator(project, sep)), true
	}
	return p, false
}

// updatePath makes newPath current and refreshes the candidate list.
func (r *StateReducer) updatePath(state *Session, newPath fspath.Path, saveHistory bool) {
	if saveHistory {
		state.History = append(state.History, state.CurrentPath)
	}
	state.CurrentPath = newPath
	state.Cursor = -1
	if state.Input.Text != newPath.Full {
		state.setInputText(newPath.Full)
	}
	r.refreshItems(state)
}

func (r *StateReducer) refreshItems(state *Session) {
	loader := state.CandidateLoader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		state.Items = r.BuildItems(context.Background(), state.CurrentPath)
		state.Loading = false
		return
	}

	if prev := state.loadToken; prev != 0 {
		loader.Cancel(prev)
	}
	state.lastToken++
	state.loadToken = state.lastToken
	state.Loading = true
	state.Items = nil

	loader.Start(CandidateLoadRequest{
		Token: state.loadToken,
		Path:  state.CurrentPath,
		Callback: func(result CandidateLoadResult) {
			dispatch(CandidatesLoadedAction(result))
		},
	})
}

// BuildItems computes the rows shown for p: the ".." row (unless the listed
// directory is a root or nothing matched) followed by the arranged candidates.
// Cache writes stop once ctx is cancelled.
func (r *StateReducer) BuildItems(ctx context.Context, p fspath.Path) []ListItem {
	opts := r.matchOptions()
	engine := r.engine.WithContext(ctx)
	cands := engine.Match(p, opts)
	cands = engine.Arrange(cands, opts.Fuzzy && p.Fragment != "")
	if len(cands) == 0 {
		return nil
	}

	projects := r.projectSet()
	items := make([]ListItem, 0, len(cands)+1)
	if dir := fspath.Parse(p.Directory); !dir.IsRoot(r.resolver) {
		items = append(items, ListItem{
			Path:   dir.Parent(r.resolver),
			Kind:   fsutil.KindDirectory,
			Parent: true,
		})
	}
	for _, c := range cands {
		item := ListItem{Path: c.Path, Kind: c.Kind, Highlights: c.Highlights}
		if c.IsDir() {
			_, isProject := projects[cleanAbs(c.Path.Absolute(r.resolver))]
			item.CanAddProject = !isProject
		}
		items = append(items, item)
	}
	return items
}

func (r *StateReducer) matchOptions() search.MatchOptions {
	return search.MatchOptions{Fuzzy: r.opts.FuzzyMatch}
}

func (r *StateReducer) initialPath() fspath.Path {
	return fspath.Initial(r.opts.DefaultInputValue, r.host.ActiveFilePath(), r.projectRoot())
}

func (r *StateReducer) projectRoot() string {
	if dirs := r.host.ProjectDirectories(); len(dirs) > 0 {
		return dirs[0]
	}
	return ""
}

func (r *StateReducer) projectSet() map[string]struct{} {
	dirs := r.host.ProjectDirectories()
	set := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		set[cleanAbs(dir)] = struct{}{}
	}
	return set
}

func (r *StateReducer) isProjectDirectory(p fspath.Path) bool {
	_, ok := r.projectSet()[cleanAbs(p.Absolute(r.resolver))]
	return ok
}

func (r *StateReducer) reject(reason string) {
	r.logger.Debug("rejected", "reason", reason)
	r.host.Beep()
}

func cleanAbs(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func withSeparator(dir, sep string) string {
	if strings.HasSuffix(dir, sep) {
		return dir
	}
	return dir + sep
}
