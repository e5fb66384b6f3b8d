package search

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
)

// Filesystem is the read side of the disk the engine needs.
type Filesystem interface {
	Stat(abs string) (fsutil.Entry, bool)
	ListDirectory(dir string) ([]string, error)
}

// Candidate is one entry matched against the typed fragment.
type Candidate struct {
	Path fspath.Path
	Kind fsutil.Kind
	// Highlights holds the byte offsets into the entry name that the fuzzy
	// matcher consumed. Prefix matches leave it nil.
	Highlights []int
}

// Name returns the entry name (the last segment of the candidate path).
func (c Candidate) Name() string {
	return c.Path.Fragment
}

// IsDir reports whether the candidate resolved to a directory.
func (c Candidate) IsDir() bool {
	return c.Kind == fsutil.KindDirectory
}

// MatchOptions tunes a single MatchingPaths call.
type MatchOptions struct {
	Fuzzy bool
	// CaseSensitive overrides the inference from the fragment when set.
	CaseSensitive *bool
}

// EngineConfig carries the optional collaborators of an Engine.
type EngineConfig struct {
	Ignore       *IgnoreFilter
	Cache        *Cache
	Logger       *slog.Logger
	HideDotfiles bool
	// Collator orders names in Arrange; nil uses the root collation.
	Collator *fspath.Collator
}

// Engine lists the entries of the directory a path points into and filters
// them by the fragment being typed.
type Engine struct {
	fs           Filesystem
	resolver     fspath.Resolver
	ignore       *IgnoreFilter
	cache        *Cache
	logger       *slog.Logger
	hideDotfiles bool
	collator     *fspath.Collator
	ctx          context.Context
}

// NewEngine wires an engine over fsys. Paths are resolved through resolver.
func NewEngine(fsys Filesystem, resolver fspath.Resolver, cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	collator := cfg.Collator
	if collator == nil {
		collator = fspath.NewCollator("")
	}
	return &Engine{
		fs:           fsys,
		resolver:     resolver,
		ignore:       cfg.Ignore,
		cache:        cfg.Cache,
		logger:       logger,
		hideDotfiles: cfg.HideDotfiles,
		collator:     collator,
		ctx:          context.Background(),
	}
}

// WithContext returns a shallow copy of e whose cache writes are tied to ctx.
// Once ctx is cancelled, results are still computed but no longer cached.
func (e *Engine) WithContext(ctx context.Context) *Engine {
	if ctx == nil {
		ctx = context.Background()
	}
	e2 := *e
	e2.ctx = ctx
	return &e2
}

// Resolver returns the resolver used for absolute paths.
func (e *Engine) Resolver() fspath.Resolver {
	return e.resolver
}

// Cache returns the session cache, which may be nil.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// MatchingPaths returns the entries of p's directory that match p's fragment.
func (e *Engine) MatchingPaths(p fspath.Path, opts MatchOptions) []fspath.Path {
	return pathsOf(e.Match(p, opts))
}

// Match is MatchingPaths with match metadata. Prefix results keep listing
// order; fuzzy results are ordered by score.
func (e *Engine) Match(p fspath.Path, opts MatchOptions) []Candidate {
	caseSensitive := p.HasCaseSensitiveFragment()
	if opts.CaseSensitive != nil {
		caseSensitive = *opts.CaseSensitive
	}
	absDir := fspath.Parse(p.Directory).Absolute(e.resolver)
	key := queryKey(absDir, p.Directory, p.Fragment, opts.Fuzzy, caseSensitive)

	return e.cache.Matches(e.ctx, key, func() []Candidate {
		return e.match(p, absDir, opts.Fuzzy, caseSensitive)
	})
}

func (e *Engine) match(p fspath.Path, absDir string, fuzzyMode, caseSensitive bool) []Candidate {
	names, err := e.listDirectory(absDir)
	if err != nil {
		e.logger.Debug("listing failed", "dir", absDir, "err", err)
		return nil
	}
	names = e.ignore.Filter(names)

	var cands []Candidate
	switch {
	case p.Fragment == "":
		cands = make([]Candidate, 0, len(names))
		for _, name := range names {
			cands = append(cands, Candidate{Path: p.Join(name)})
		}
	case fuzzyMode:
		for _, m := range fuzzy.Find(p.Fragment, names) {
			cands = append(cands, Candidate{Path: p.Join(m.Str), Highlights: m.MatchedIndexes})
		}
	default:
		for _, name := range names {
			if MatchFragment(p.Fragment, name, caseSensitive) {
				cands = append(cands, Candidate{Path: p.Join(name)})
			}
		}
	}

	visible := cands[:0]
	for _, c := range cands {
		name := c.Name()
		if e.hideDotfiles && fsutil.IsHidden(filepath.Join(absDir, name), name) {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

func (e *Engine) listDirectory(absDir string) ([]string, error) {
	return e.cache.Listing(e.ctx, absDir, func() ([]string, error) {
		return e.fs.ListDirectory(absDir)
	})
}

// Stat resolves p and reports what it points at.
func (e *Engine) Stat(p fspath.Path) (fsutil.Entry, bool) {
	abs := p.Absolute(e.resolver)
	return e.cache.Stat(e.ctx, abs, func() (fsutil.Entry, bool) {
		return e.fs.Stat(abs)
	})
}

// Kind resolves p and reports whether it is a file, a directory or absent.
func (e *Engine) Kind(p fspath.Path) fsutil.Kind {
	entry, ok := e.Stat(p)
	if !ok {
		return fsutil.KindAbsent
	}
	return entry.Kind()
}

// Arrange resolves the kind of every candidate and drops the ones that no
// longer exist. Unless preserveOrder is set, directories come first and each
// group is sorted with the engine collator.
func (e *Engine) Arrange(cands []Candidate, preserveOrder bool) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		c.Kind = e.Kind(c.Path)
		if c.Kind == fsutil.KindAbsent {
			continue
		}
		out = append(out, c)
	}
	if preserveOrder {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir() != out[j].IsDir() {
			return out[i].IsDir()
		}
		return e.collator.Compare(out[i].Path, out[j].Path) < 0
	})
	return out
}

// Autocomplete returns the path the matches for p complete to. ok is false
// when nothing matches or no progress is possible.
func (e *Engine) Autocomplete(p fspath.Path, opts MatchOptions) (fspath.Path, bool) {
	matches := e.MatchingPaths(p, opts)
	switch {
	case len(matches) == 0:
		return p, false
	case len(matches) == 1 || opts.Fuzzy:
		next := matches[0]
		if e.Kind(next) == fsutil.KindDirectory {
			next = next.AsDirectory()
		}
		return next, true
	}

	caseSensitive := p.HasCaseSensitiveFragment()
	if opts.CaseSensitive != nil {
		caseSensitive = *opts.CaseSensitive
	}
	prefix, err := fspath.CommonPrefix(matches, caseSensitive)
	if err != nil || prefix.Equals(p) {
		return p, false
	}
	return prefix, true
}

// MatchFragment reports whether name starts with fragment. Both sides are
// case-folded unless caseSensitive is set.
func MatchFragment(fragment, name string, caseSensitive bool) bool {
	if !caseSensitive {
		fragment = strings.ToLower(fragment)
		name = strings.ToLower(name)
	}
	return strings.HasPrefix(name, fragment)
}

func queryKey(absDir, dir, fragment string, fuzzyMode, caseSensitive bool) string {
	var b strings.Builder
	b.WriteString(absDir)
	b.WriteByte(0)
	b.WriteString(dir)
	b.WriteByte(0)
	b.WriteString(fragment)
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(fuzzyMode))
	b.WriteString(strconv.FormatBool(caseSensitive))
	return b.String()
}
