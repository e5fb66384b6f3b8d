package fspath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InitialPolicy selects what the path input shows when the picker opens.
type InitialPolicy int

const (
	InitialActiveFileDirectory InitialPolicy = iota
	InitialProjectRoot
	InitialEmpty
)

var policyNames = map[InitialPolicy]string{
	InitialActiveFileDirectory: "Active file's directory",
	InitialProjectRoot:         "Project root",
	InitialEmpty:               "Empty",
}

func (p InitialPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("InitialPolicy(%d)", int(p))
}

// ParseInitialPolicy accepts the display names above as well as short
// keyword forms ("active-file", "project", "empty").
func ParseInitialPolicy(text string) (InitialPolicy, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	key = strings.NewReplacer("_", "-", " ", "-", "'", "").Replace(key)
	switch key {
	case "active-files-directory", "active-file-directory", "active-file", "activefiledirectory":
		return InitialActiveFileDirectory, nil
	case "project-root", "project", "projectroot":
		return InitialProjectRoot, nil
	case "empty", "":
		return InitialEmpty, nil
	}
	return InitialEmpty, fmt.Errorf("%w: unknown default input value %q", ErrInvalidArgument, text)
}

// MarshalText lets config encoders write the policy by name.
func (p InitialPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText lets config decoders read the policy by name.
func (p *InitialPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseInitialPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Initial computes the path to show when the picker opens. activeFile is the
// path of the document being edited and projectRoot the primary project
// directory; either may be empty. The active file's directory falls back to
// the project root, which falls back to the empty path.
func Initial(policy InitialPolicy, activeFile, projectRoot string) Path {
	switch policy {
	case InitialActiveFileDirectory:
		if activeFile != "" {
			return Parse(withTrailingSeparator(filepath.Dir(activeFile)))
		}
		fallthrough
	case InitialProjectRoot:
		if projectRoot != "" {
			return Parse(withTrailingSeparator(projectRoot))
		}
	}
	return Parse("")
}

func withTrailingSeparator(dir string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}
