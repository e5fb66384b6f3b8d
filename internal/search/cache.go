package search

import (
	"context"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
)

const (
	statKeyPrefix    = "stat:"
	listingKeyPrefix = "list:"
	matchKeyPrefix   = "match:"
)

// Cache memoises stat results, directory listings and match results for one
// picker session. Entries never expire and are never invalidated by
// filesystem changes; the owning session calls Clear when it closes.
// A nil *Cache disables caching.
//
// Results computed under a cancelled context are returned but not stored, so
// a listing still running when the session closes cannot refill the cache
// after Clear.
type Cache struct {
	mu    sync.Mutex
	store *gocache.Cache
}

type statResult struct {
	entry fsutil.Entry
	ok    bool
}

type listingResult struct {
	names []string
	err   error
}

// NewCache returns an empty session cache.
func NewCache() *Cache {
	return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
}

// Stat returns the cached stat result for abs, calling load on a miss.
func (c *Cache) Stat(ctx context.Context, abs string, load func() (fsutil.Entry, bool)) (fsutil.Entry, bool) {
	if c == nil {
		return load()
	}
	key := statKeyPrefix + abs
	if v, ok := c.store.Get(key); ok {
		res := v.(statResult)
		return res.entry, res.ok
	}
	entry, ok := load()
	c.put(ctx, key, statResult{entry: entry, ok: ok})
	return entry, ok
}

// Listing returns the cached listing of dir, calling load on a miss. Failed
// listings are cached too.
func (c *Cache) Listing(ctx context.Context, dir string, load func() ([]string, error)) ([]string, error) {
	if c == nil {
		return load()
	}
	key := listingKeyPrefix + dir
	if v, ok := c.store.Get(key); ok {
		res := v.(listingResult)
		return res.names, res.err
	}
	names, err := load()
	c.put(ctx, key, listingResult{names: names, err: err})
	return names, err
}

// Matches returns the cached candidates for a query key, calling load on a miss.
func (c *Cache) Matches(ctx context.Context, key string, load func() []Candidate) []Candidate {
	if c == nil {
		return load()
	}
	key = matchKeyPrefix + key
	if v, ok := c.store.Get(key); ok {
		return cloneCandidates(v.([]Candidate))
	}
	cands := load()
	c.put(ctx, key, cloneCandidates(cands))
	return cands
}

// Len reports how many results are cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}

// Clear drops every cached result.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.store.Flush()
	c.mu.Unlock()
}

// put stores value unless ctx was cancelled. Clear holds the same lock, so a
// context cancelled before Clear can never write afterwards.
func (c *Cache) put(ctx context.Context, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.store.SetDefault(key, value)
}

func cloneCandidates(cands []Candidate) []Candidate {
	if cands == nil {
		return nil
	}
	out := make([]Candidate, len(cands))
	copy(out, cands)
	return out
}

// pathsOf strips the match metadata from candidates.
func pathsOf(cands []Candidate) []fspath.Path {
	paths := make([]fspath.Path, len(cands))
	for i, c := range cands {
		paths[i] = c.Path
	}
	return paths
}
