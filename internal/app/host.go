package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/kk-code-lab/ropen/internal/logging"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
	renderui "github.com/kk-code-lab/ropen/internal/ui/render"
)

var (
	errNoEditor             = errors.New("no editor found; set $VISUAL or $EDITOR")
	errClipboardUnavailable = errors.New("no clipboard utility available")
)

// OpenRequest is a file the picker handed to the host.
type OpenRequest struct {
	Path  string
	Split statepkg.Split
}

// HostConfig configures a TerminalHost.
type HostConfig struct {
	// ActiveFile plays the role of the document being edited; it seeds the
	// initial path and is the split partner.
	ActiveFile string
	// Projects are the initial project folders; the first one is primary.
	Projects []string
	// Editor is the resolved editor command line.
	Editor []string
	// PrintOnly makes opened paths go to stdout instead of an editor.
	PrintOnly bool
	Logger    *slog.Logger
}

// TerminalHost implements statepkg.Host for the terminal. Opened files are
// queued and launched once the picker screen is gone.
type TerminalHost struct {
	mu         sync.Mutex
	activeFile string
	projects   []string
	editor     []string
	printOnly  bool
	opened     []OpenRequest
	notice     renderui.Notice
	logger     *slog.Logger

	beep      func()
	copyText  func(string) error
	runEditor func(*exec.Cmd) error
}

// NewTerminalHost creates a host with the given project folders.
func NewTerminalHost(cfg HostConfig) *TerminalHost {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	projects := make([]string, 0, len(cfg.Projects))
	for _, dir := range cfg.Projects {
		if dir == "" {
			continue
		}
		dir = filepath.Clean(dir)
		if !slices.Contains(projects, dir) {
			projects = append(projects, dir)
		}
	}
	return &TerminalHost{
		activeFile: cfg.ActiveFile,
		projects:   projects,
		editor:     cfg.Editor,
		printOnly:  cfg.PrintOnly,
		logger:     logger,
		copyText:   writeClipboard,
		runEditor:  (*exec.Cmd).Run,
	}
}

func (h *TerminalHost) ActiveFilePath() string {
	return h.activeFile
}

func (h *TerminalHost) ProjectDirectories() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.projects)
}

func (h *TerminalHost) AddProjectDirectory(abs string) {
	abs = filepath.Clean(abs)
	h.mu.Lock()
	defer h.mu.Unlock()
	if slices.Contains(h.projects, abs) {
		return
	}
	h.projects = append(h.projects, abs)
	h.logger.Info("project folder added", "path", abs)
}

// OpenPath queues abs for the editor. It fails up front when there is no
// editor to hand the file to.
func (h *TerminalHost) OpenPath(abs string, split statepkg.Split) error {
	if !h.printOnly && len(h.editor) == 0 {
		return errNoEditor
	}
	h.mu.Lock()
	h.opened = append(h.opened, OpenRequest{Path: abs, Split: split})
	h.mu.Unlock()
	h.logger.Info("path opened", "path", abs, "split", split.String())
	return nil
}

func (h *TerminalHost) NotifySuccess(title, detail string) {
	h.setNotice(renderui.Notice{Title: title, Detail: detail})
	h.logger.Info(title, "detail", detail)
}

func (h *TerminalHost) NotifyError(title, detail string) {
	h.setNotice(renderui.Notice{Title: title, Detail: detail, Error: true})
	h.logger.Warn(title, "detail", detail)
}

func (h *TerminalHost) setNotice(n renderui.Notice) {
	h.mu.Lock()
	h.notice = n
	h.mu.Unlock()
}

// Notice returns the last notification that has not been cleared.
func (h *TerminalHost) Notice() renderui.Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.notice
}

// ClearNotice drops the current notification; the next key press does this.
func (h *TerminalHost) ClearNotice() {
	h.setNotice(renderui.Notice{})
}

func (h *TerminalHost) Beep() {
	if h.beep != nil {
		h.beep()
	}
}

func (h *TerminalHost) CopyToClipboard(text string) error {
	return h.copyText(text)
}

// Opened returns the queued open requests in order.
func (h *TerminalHost) Opened() []OpenRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.opened)
}

// PrintOnly reports whether opened paths are printed instead of edited.
func (h *TerminalHost) PrintOnly() bool {
	return h.printOnly
}

// LaunchEditor runs the editor for req and waits for it to exit. The picker
// screen must be finalized first.
func (h *TerminalHost) LaunchEditor(req OpenRequest) error {
	if len(h.editor) == 0 {
		return errNoEditor
	}
	args := editorArgs(h.editor, h.activeFile, req)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if runtime.GOOS != "windows" {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			defer func() {
				_ = tty.Close()
			}()
			cmd.Stdin = tty
			cmd.Stdout = tty
			cmd.Stderr = tty
		}
	}

	h.logger.Debug("launching editor", "args", args)
	if err := h.runEditor(cmd); err != nil {
		return fmt.Errorf("run editor %s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

func writeClipboard(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}
