package state

import (
	"fmt"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
)

// selectPath navigates into directories and hands everything else to the
// open flow. Directories cannot be opened in a split.
func (r *StateReducer) selectPath(state *Session, p fspath.Path, split Split) {
	if r.engine.Kind(p) == fsutil.KindDirectory {
		if split != SplitNone {
			r.reject("cannot split-open a directory")
			return
		}
		r.updatePath(state, p.AsDirectory(), true)
		return
	}
	r.openPath(state, p, split)
}

// openPath opens existing files, creates missing ones and, when enabled,
// creates bare directory paths. The picker closes after every attempt that
// reached the filesystem, successful or not.
func (r *StateReducer) openPath(state *Session, p fspath.Path, split Split) {
	abs := p.Absolute(r.resolver)

	switch r.engine.Kind(p) {
	case fsutil.KindFile:
		if err := r.host.OpenPath(abs, split); err != nil {
			r.host.NotifyError("Could not open file", fmt.Sprintf("%s: %v", p.Full, err))
		} else {
			r.events.emitOpen(abs)
		}
		r.close(state)

	case fsutil.KindDirectory:
		r.reject("cannot open a directory")

	default:
		if p.Fragment != "" {
			if err := r.createAndOpenFile(p, abs, split); err != nil {
				r.logger.Warn("open failed", "path", abs, "err", err)
				r.host.NotifyError("Could not open file", err.Error())
			}
			r.close(state)
			return
		}
		if !r.opts.CreateDirectories {
			r.reject("directory creation disabled")
			return
		}
		if err := r.creator.CreateDirectoriesFor(abs); err != nil {
			r.logger.Warn("mkdir failed", "path", abs, "err", err)
			r.host.NotifyError("Could not create directory", err.Error())
		} else {
			r.host.NotifySuccess("Directory created", fmt.Sprintf("Created directory %q.", p.Full))
			r.events.emitCreate(abs)
		}
		r.close(state)
	}
}

func (r *StateReducer) createAndOpenFile(p fspath.Path, abs string, split Split) error {
	dir := fspath.Parse(p.Directory).Absolute(r.resolver)
	if err := r.creator.CreateDirectoriesFor(dir); err != nil {
		return err
	}
	if r.opts.CreateFileInstantly {
		if err := r.creator.CreateEmptyFile(abs); err != nil {
			return err
		}
		r.events.emitCreate(abs)
	}
	if err := r.host.OpenPath(abs, split); err != nil {
		return fmt.Errorf("cannot open %s: %w", abs, err)
	}
	r.events.emitOpen(abs)
	return nil
}

// addProjectFolder registers p with the host when it is a directory that is
// not a project folder yet.
func (r *StateReducer) addProjectFolder(state *Session, p fspath.Path) {
	if r.engine.Kind(p) != fsutil.KindDirectory || r.isProjectDirectory(p) {
		r.reject("not an addable folder")
		return
	}
	abs := cleanAbs(p.Absolute(r.resolver))
	r.host.AddProjectDirectory(abs)
	r.host.NotifySuccess("Added project folder", fmt.Sprintf("Added %q as a project folder.", p.Full))

	for i := range state.Items {
		if cleanAbs(state.Items[i].Path.Absolute(r.resolver)) == abs {
			state.Items[i].CanAddProject = false
		}
	}
}

// copyPath puts the absolute form of the selected row, or of the typed
// path, on the clipboard.
func (r *StateReducer) copyPath(state *Session) {
	target := state.CurrentPath
	if item, ok := state.SelectedItem(); ok {
		target = item.Path
	}
	abs := target.Absolute(r.resolver)
	if err := r.host.CopyToClipboard(abs); err != nil {
		r.host.NotifyError("Could not copy path", err.Error())
		return
	}
	r.host.NotifySuccess("Copied path", abs)
}
