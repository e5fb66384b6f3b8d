package state

import (
	"context"
	"testing"
	"time"

	"github.com/kk-code-lab/ropen/internal/fspath"
)

func TestAsyncCandidateLoaderDeliversResult(t *testing.T) {
	loader := NewAsyncCandidateLoader(func(_ context.Context, p fspath.Path) []ListItem {
		return []ListItem{{Path: p.Join("child")}}
	})

	results := make(chan CandidateLoadResult, 1)
	loader.Start(CandidateLoadRequest{
		Token:    7,
		Path:     fspath.Parse("/tmp/"),
		Callback: func(res CandidateLoadResult) { results <- res },
	})

	select {
	case res := <-results:
		if res.Token != 7 || len(res.Items) != 1 || res.Items[0].Path.Full != "/tmp/child" {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for loader")
	}
}

func TestAsyncCandidateLoaderCancelDropsResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	loader := NewAsyncCandidateLoader(func(_ context.Context, p fspath.Path) []ListItem {
		close(started)
		<-release
		return nil
	})

	results := make(chan CandidateLoadResult, 1)
	loader.Start(CandidateLoadRequest{
		Token:    1,
		Path:     fspath.Parse("/tmp/"),
		Callback: func(res CandidateLoadResult) { results <- res },
	})
	<-started
	loader.Cancel(1)
	close(release)

	select {
	case res := <-results:
		t.Fatalf("cancelled load delivered %+v", res)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAsyncCandidateLoaderIgnoresInvalidRequests(t *testing.T) {
	calls := 0
	loader := NewAsyncCandidateLoader(func(context.Context, fspath.Path) []ListItem {
		calls++
		return nil
	})
	loader.Start(CandidateLoadRequest{Token: 0, Callback: func(CandidateLoadResult) {}})
	loader.Start(CandidateLoadRequest{Token: 1})
	time.Sleep(20 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("invalid requests should not run, calls=%d", calls)
	}
}
