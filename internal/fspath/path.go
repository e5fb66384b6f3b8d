package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidArgument marks contract violations by callers of this package.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTooFewPaths is returned by CommonPrefix for lists shorter than two elements.
var ErrTooFewPaths = fmt.Errorf("%w: common prefix needs at least two paths", ErrInvalidArgument)

// Resolver turns a typed path into an absolute one.
type Resolver interface {
	Absolute(text string) string
}

// Path is a user-typed filesystem path split into the directory part and the
// final segment ("fragment") the user is still typing. Values are immutable;
// every operation returns a new Path.
type Path struct {
	Full      string
	Directory string
	Fragment  string
	Sep       byte
}

// Parse splits text on its preferred separator. Paths that end in a
// separator have a blank fragment.
func Parse(text string) Path {
	sep := PreferredSeparator(text)
	fragment := text
	if idx := strings.LastIndexByte(text, sep); idx >= 0 {
		fragment = text[idx+1:]
	}
	return Path{
		Full:      text,
		Directory: text[:len(text)-len(fragment)],
		Fragment:  fragment,
		Sep:       sep,
	}
}

// PreferredSeparator returns the first separator found in text, or the host
// separator when text has none.
func PreferredSeparator(text string) byte {
	forward := strings.IndexByte(text, '/')
	back := strings.IndexByte(text, '\\')

	switch {
	case forward == -1 && back == -1:
		return os.PathSeparator
	case forward == -1:
		return '\\'
	case back == -1:
		return '/'
	case forward < back:
		return '/'
	default:
		return '\\'
	}
}

func (p Path) String() string {
	return p.Full
}

// IsEmpty reports whether the path has no text at all.
func (p Path) IsEmpty() bool {
	return p.Full == ""
}

func (p Path) separator() byte {
	if p.Sep == 0 {
		return os.PathSeparator
	}
	return p.Sep
}

// Absolute resolves the path through r. A nil resolver leaves Full untouched.
func (p Path) Absolute(r Resolver) string {
	if r == nil {
		return p.Full
	}
	return r.Absolute(p.Full)
}

// AsDirectory returns the path with a trailing separator.
func (p Path) AsDirectory() Path {
	if p.Fragment == "" {
		return p
	}
	return Parse(p.Full + string(p.separator()))
}

// IsRoot reports whether the absolute form of the path is a filesystem root.
func (p Path) IsRoot(r Resolver) bool {
	abs := p.Absolute(r)
	return filepath.Dir(abs) == abs
}

// Parent strips one path segment. Roots are their own parent.
func (p Path) Parent(r Resolver) Path {
	switch {
	case p.IsRoot(r):
		return p
	case p.Fragment != "":
		return Parse(p.Directory)
	default:
		sep := p.separator()
		dir := dirname(p.Directory, sep)
		if dir == "." {
			// Relative input ran out of segments; continue from the resolved location.
			abs := strings.TrimRight(p.Absolute(r), `/\`)
			if abs == "" {
				abs = string(sep)
			}
			dir = filepath.Dir(abs)
		}
		if !strings.HasSuffix(dir, string(sep)) {
			dir += string(sep)
		}
		return Parse(dir)
	}
}

// Root returns the root of the drive the path is on.
func (p Path) Root(r Resolver) Path {
	current := p.Absolute(r)
	last := ""
	for current != last {
		last = current
		current = filepath.Dir(current)
	}
	return Parse(current)
}

// HasCaseSensitiveFragment reports whether the fragment contains an
// uppercase letter.
func (p Path) HasCaseSensitiveFragment() bool {
	for _, r := range p.Fragment {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// HasShortcut checks if the last segment before the trailing separator is
// the given shortcut token. ":/" and "/foo/bar/:/" have the ":" shortcut,
// "/foo/bar:/" and "/blah/:" do not.
func (p Path) HasShortcut(token string) bool {
	if p.Fragment != "" {
		return false
	}
	sep := string(p.separator())
	shortcut := token + sep
	return strings.HasSuffix(p.Directory, sep+shortcut) || p.Directory == shortcut
}

// Equals compares the full text of both paths.
func (p Path) Equals(other Path) bool {
	return p.Full == other.Full
}

// Join appends name to the directory part of the path.
func (p Path) Join(name string) Path {
	return Parse(p.Directory + name)
}

// CommonPrefix returns the longest common prefix of all given paths. Letters
// that differ only by case are folded to lower case unless caseSensitive is set.
func CommonPrefix(paths []Path, caseSensitive bool) (Path, error) {
	if len(paths) < 2 {
		return Path{}, ErrTooFewPaths
	}

	fulls := make([]string, len(paths))
	for i, p := range paths {
		fulls[i] = p.Full
	}
	sort.Strings(fulls)
	first, last := fulls[0], fulls[len(fulls)-1]

	var prefix strings.Builder
	for len(first) > 0 && len(last) > 0 {
		a, sizeA := utf8.DecodeRuneInString(first)
		b, sizeB := utf8.DecodeRuneInString(last)
		// Invalid bytes all decode to RuneError, so they only match byte for byte.
		invalid := (a == utf8.RuneError && sizeA == 1) || (b == utf8.RuneError && sizeB == 1)
		switch {
		case first[:sizeA] == last[:sizeB]:
			prefix.WriteString(first[:sizeA])
		case !caseSensitive && !invalid && unicode.ToLower(a) == unicode.ToLower(b):
			prefix.WriteRune(unicode.ToLower(a))
		default:
			return Parse(prefix.String()), nil
		}
		first, last = first[sizeA:], last[sizeB:]
	}
	return Parse(prefix.String()), nil
}

// dirname mirrors POSIX dirname for the given separator: trailing separators
// are ignored and "." is returned when no separator remains.
func dirname(path string, sep byte) string {
	if path == "" {
		return "."
	}
	end := len(path)
	for end > 1 && path[end-1] == sep {
		end--
	}
	trimmed := path[:end]
	idx := strings.LastIndexByte(trimmed, sep)
	switch {
	case idx == -1:
		return "."
	case idx == 0:
		return string(sep)
	}
	dir := trimmed[:idx]
	for len(dir) > 1 && dir[len(dir)-1] == sep {
		dir = dir[:len(dir)-1]
	}
	return dir
}
