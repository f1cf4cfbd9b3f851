package explorer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wikigraph/pkg/common"
)

func TestFetchCoalescesConcurrentCallers(t *testing.T) {
	src := newFakeSource()
	src.page("Slow article").delay = 100 * time.Millisecond
	e := newTestExplorer(src)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = e.fetch(context.Background(), "Slow_article")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: fetch() error = %v", i, err)
		}
	}
	if calls := src.callCount("Slow article"); calls != 1 {
		t.Errorf("source called %d times for %d concurrent callers, want 1", calls, callers)
	}
}

func TestFetchServedFromCache(t *testing.T) {
	src := newFakeSource()
	src.page("Atom")
	e := newTestExplorer(src)

	for i := 0; i < 3; i++ {
		if _, err := e.fetch(context.Background(), "Atom"); err != nil {
			t.Fatalf("fetch() error = %v", err)
		}
	}
	if calls := src.callCount("Atom"); calls != 1 {
		t.Errorf("source called %d times, want 1", calls)
	}
	if e.CacheSize() != 1 {
		t.Errorf("cache size = %d, want 1", e.CacheSize())
	}
}

func TestFetchRetriesTransientErrors(t *testing.T) {
	src := newFakeSource()
	src.page("Flaky article").failures = 2
	e := newTestExplorer(src)

	content, err := e.fetch(context.Background(), "Flaky_article")
	if err != nil {
		t.Fatalf("fetch() error = %v, want success after retries", err)
	}
	if content.Title != "Flaky article" {
		t.Errorf("content title = %q, want %q", content.Title, "Flaky article")
	}
	if calls := src.callCount("Flaky article"); calls != 3 {
		t.Errorf("source called %d times, want 3 (1 try + 2 retries)", calls)
	}
}

func TestFetchGivesUpAfterRetryBudget(t *testing.T) {
	src := newFakeSource()
	src.page("Down article").failures = 10
	e := newTestExplorer(src)

	if _, err := e.fetch(context.Background(), "Down_article"); err == nil {
		t.Fatal("fetch() = nil error, want failure once retries are exhausted")
	}
	if calls := src.callCount("Down article"); calls != 3 {
		t.Errorf("source called %d times, want 3 (1 try + 2 retries)", calls)
	}
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	src := newFakeSource()
	e := newTestExplorer(src)

	_, err := e.fetch(context.Background(), "Missing_article")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("fetch() error = %v, want ErrNotFound", err)
	}
	if calls := src.callCount("Missing article"); calls != 1 {
		t.Errorf("source called %d times, want 1 (not found is terminal)", calls)
	}
}

func TestFlushDropsCachedContent(t *testing.T) {
	src := newFakeSource()
	src.page("Atom")
	e := newTestExplorer(src)

	if _, err := e.fetch(context.Background(), "Atom"); err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	e.Flush()
	if e.CacheSize() != 0 {
		t.Errorf("cache size after Flush = %d, want 0", e.CacheSize())
	}
	if _, err := e.fetch(context.Background(), "Atom"); err != nil {
		t.Fatalf("fetch() after flush error = %v", err)
	}
	if calls := src.callCount("Atom"); calls != 2 {
		t.Errorf("source called %d times, want 2 after flush", calls)
	}
}
