package state

import "github.com/kk-code-lab/ropen/internal/fspath"

// Action is the base interface for all state mutations
type Action interface{}

// ===== LIFECYCLE ACTIONS =====

type ToggleAction struct{}
type CloseAction struct{}

// ===== PATH ACTIONS =====

// PathChangeAction reports that the user edited the path input.
type PathChangeAction struct {
	Path fspath.Path
}

type UpdatePathAction struct {
	Path        fspath.Path
	SaveHistory bool
}

type SelectPathAction struct {
	Path  fspath.Path
	Split Split
}

type DeletePathComponentAction struct{}
type AutocompleteAction struct{}
type UndoAction struct{}

// ===== CURSOR ACTIONS =====

type MoveCursorAction struct {
	Direction string // "up" or "down"
}
type MoveCursorTopAction struct{}
type MoveCursorBottomAction struct{}

// ===== CONFIRM ACTIONS =====

type ConfirmAction struct {
	Split Split
}
type ConfirmSelectedOrFirstAction struct{}

// ClickPathAction selects a list entry by its path (mouse).
type ClickPathAction struct {
	Path fspath.Path
}

// ===== PROJECT ACTIONS =====

type AddProjectFolderAction struct {
	Path fspath.Path
}
type AddSelectedProjectFolderAction struct{}

type CopyPathAction struct{}

// ===== INPUT ACTIONS =====

type InputCharAction struct {
	Char rune
}
type InputBackspaceAction struct{}
type InputDeleteAction struct{}
type InputMoveCaretAction struct {
	Direction string // "left", "right", "word-left", "word-right", "home", "end"
}
type InputSetTextAction struct {
	Text string
}

// ===== ASYNC ACTIONS =====

// CandidatesLoadedAction carries the result of a background listing.
type CandidatesLoadedAction CandidateLoadResult
