package state

import (
	"context"
	"sync"

	"github.com/kk-code-lab/ropen/internal/fspath"
)

// CandidateLoader computes candidate lists off the UI goroutine.
type CandidateLoader interface {
	Start(req CandidateLoadRequest)
	Cancel(token int)
}

// CandidateLoadRequest describes a listing to perform.
type CandidateLoadRequest struct {
	Token    int
	Path     fspath.Path
	Callback func(CandidateLoadResult)
}

// CandidateLoadResult is emitted by CandidateLoader once the listing completes.
type CandidateLoadResult struct {
	Token int
	Path  fspath.Path
	Items []ListItem
}

// NewAsyncCandidateLoader constructs the default goroutine-based loader.
// build runs on the loader goroutine and must be safe for concurrent use. Its
// context is cancelled by Cancel.
func NewAsyncCandidateLoader(build func(context.Context, fspath.Path) []ListItem) CandidateLoader {
	return &asyncCandidateLoader{
		build: build,
		jobs:  make(map[int]context.CancelFunc),
	}
}

type asyncCandidateLoader struct {
	build func(context.Context, fspath.Path) []ListItem
	mu    sync.Mutex
	jobs  map[int]context.CancelFunc
}

func (l *asyncCandidateLoader) Start(req CandidateLoadRequest) {
	if req.Token == 0 || req.Callback == nil || l.build == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Token] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Token)
			l.mu.Unlock()
		}()

		items := l.build(ctx, req.Path)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(CandidateLoadResult{
			Token: req.Token,
			Path:  req.Path,
			Items: items,
		})
	}()
}

func (l *asyncCandidateLoader) Cancel(token int) {
	l.mu.Lock()
	if cancel, ok := l.jobs[token]; ok {
		cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}
