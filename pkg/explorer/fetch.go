package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wikigraph/internal/util"
	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// fetch resolves a canonical article id to its content record. Lookup order:
// cache, then the in-flight group (at most one outbound fetch per id across
// all concurrent callers), then the source behind the global concurrency
// ceiling. A fetch started on behalf of a canceled caller runs to completion
// so its result still lands in the cache for later reuse.
func (e *Explorer) fetch(ctx context.Context, id string) (*common.PageContent, error) {
	if content, ok := e.cache.get(id); ok {
		return content, nil
	}

	ch := e.group.DoChan(id, func() (any, error) {
		return e.fetchRemote(context.WithoutCancel(ctx), id)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*common.PageContent), nil
	}
}

// fetchRemote is the single outbound path: acquire a slot under the global
// ceiling, call the source with a per-attempt timeout, retry transient
// failures with exponential backoff, then cache the result.
func (e *Explorer) fetchRemote(ctx context.Context, id string) (*common.PageContent, error) {
	// A racing caller may have filled the cache while this one queued.
	if content, ok := e.cache.get(id); ok {
		return content, nil
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("fetch %q: %w", id, err)
	}
	defer e.sem.Release(1)

	content, err := util.RetryWithBackoff(ctx, e.maxRetries+1, e.retryDelay, isTransient,
		func(ctx context.Context) (*common.PageContent, error) {
			callCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
			defer cancel()
			return e.source.FetchContent(callCtx, common.TitleFromID(id))
		})
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", id, err)
	}

	e.cache.put(id, content)
	return content, nil
}

// isTransient reports whether a fetch failure is worth retrying. A title that
// does not resolve is a terminal answer; everything else (network, timeout,
// bad upstream status) may clear up on the next attempt.
func isTransient(err error) bool {
	return !errors.Is(err, common.ErrNotFound)
}

// fetchBatch resolves a whole BFS frontier in parallel. Failed articles are
// simply absent from the result; the build degrades around them instead of
// aborting.
func (e *Explorer) fetchBatch(ctx context.Context, ids []string) map[string]*common.PageContent {
	results := make(map[string]*common.PageContent, len(ids))
	var mu sync.Mutex

	eg := errgroup.Group{}
	for _, id := range ids {
		eg.Go(func() error {
			content, err := e.fetch(ctx, id)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					logger.Debug("[Explorer] fetch degraded", "id", id, "error", err)
				}
				return nil
			}
			mu.Lock()
			results[id] = content
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return results
}
