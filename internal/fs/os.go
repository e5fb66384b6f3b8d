package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// OS performs the picker's filesystem operations against the real disk.
type OS struct{}

// Stat reports the entry at abs. Any error, including permission problems,
// is reported as absent.
func (OS) Stat(abs string) (Entry, bool) {
	info, err := os.Lstat(abs)
	if err != nil {
		return Entry{}, false
	}

	isSymlink := info.Mode()&os.ModeSymlink != 0
	isDir := info.IsDir()
	if isSymlink {
		// Dangling links have nothing to open.
		targetInfo, err := os.Stat(abs)
		if err != nil {
			return Entry{}, false
		}
		isDir = targetInfo.IsDir()
	}

	return Entry{
		Name:      norm.NFC.String(filepath.Base(abs)),
		FullPath:  abs,
		IsDir:     isDir,
		IsSymlink: isSymlink,
	}, true
}

// ListDirectory returns the names of the entries in dir, NFC-normalised.
// Entries the platform never shows are skipped.
func (OS) ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		rawName := e.Name()
		if ShouldHideFromListing(filepath.Join(dir, rawName), rawName) {
			continue
		}
		names = append(names, norm.NFC.String(rawName))
	}
	return names, nil
}

// CreateDirectoriesFor creates dir and any missing parents. Existing
// directories are fine, and so is an intermediate component that briefly
// fails to resolve while another process is creating it.
func (OS) CreateDirectoriesFor(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}

// CreateEmptyFile creates an empty file at path unless one already exists.
func (OS) CreateEmptyFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot create file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot create file %s: %w", path, err)
	}
	return nil
}
