package state

import (
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
)

// Split says where an opened file should appear relative to the active pane.
type Split int

const (
	SplitNone Split = iota
	SplitLeft
	SplitRight
	SplitUp
	SplitDown
)

func (s Split) String() string {
	switch s {
	case SplitLeft:
		return "left"
	case SplitRight:
		return "right"
	case SplitUp:
		return "up"
	case SplitDown:
		return "down"
	default:
		return "none"
	}
}

// ParseSplit accepts the names returned by Split.String.
func ParseSplit(text string) (Split, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "none":
		return SplitNone, nil
	case "left":
		return SplitLeft, nil
	case "right":
		return SplitRight, nil
	case "up":
		return SplitUp, nil
	case "down":
		return SplitDown, nil
	}
	return SplitNone, fmt.Errorf("%w: unknown split %q", fspath.ErrInvalidArgument, text)
}

// Host is the environment the picker runs in: it knows the active document,
// owns the project folder list, opens files and shows notifications.
type Host interface {
	ActiveFilePath() string
	ProjectDirectories() []string
	AddProjectDirectory(abs string)
	OpenPath(abs string, split Split) error
	NotifySuccess(title, detail string)
	NotifyError(title, detail string)
	Beep()
	CopyToClipboard(text string) error
}

// ListItem is one row of the candidate list.
type ListItem struct {
	Path       fspath.Path
	Kind       fsutil.Kind
	Highlights []int
	// Parent marks the ".." row that leads to the parent directory.
	Parent bool
	// CanAddProject is set on directories that are not project folders yet.
	CanAddProject bool
}

// Label is the text shown for the row.
func (i ListItem) Label() string {
	if i.Parent {
		return ".."
	}
	return i.Path.Fragment
}

// IsDir reports whether the row points at a directory.
func (i ListItem) IsDir() bool {
	return i.Kind == fsutil.KindDirectory
}

// InputState is the editable path text. Caret counts runes.
type InputState struct {
	Text  string
	Caret int
}

// Session is the single source of truth for one open picker.
type Session struct {
	Open bool

	// Navigation
	CurrentPath fspath.Path
	History     []fspath.Path

	// Candidate list; Cursor is -1 when nothing is selected.
	Items  []ListItem
	Cursor int

	Input InputState

	// Background listing
	Loading         bool
	CandidateLoader CandidateLoader
	loadToken       int
	lastToken       int
	dispatchAction  func(Action)
}

// NewSession returns a closed session.
func NewSession() *Session {
	return &Session{Cursor: -1}
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *Session) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *Session) getDispatch() func(Action) {
	return s.dispatchAction
}

// ActiveLoadToken returns the token of the listing the session waits for.
func (s *Session) ActiveLoadToken() int {
	return s.loadToken
}

// SelectedItem returns the row under the cursor.
func (s *Session) SelectedItem() (ListItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return ListItem{}, false
	}
	return s.Items[s.Cursor], true
}

// FirstPath returns the first row that is not the ".." row.
func (s *Session) FirstPath() (fspath.Path, bool) {
	for _, item := range s.Items {
		if !item.Parent {
			return item.Path, true
		}
	}
	return fspath.Path{}, false
}

// setCursor clamps index to the visible rows; anything out of range clears
// the selection.
func (s *Session) setCursor(index int) {
	if index < 0 || index >= len(s.Items) {
		index = -1
	}
	s.Cursor = index
}

func (s *Session) setInputText(text string) {
	s.Input.Text = text
	s.Input.Caret = len([]rune(text))
}
