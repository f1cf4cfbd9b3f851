package explorer

import (
	"context"
	"errors"
	"time"

	"wikigraph/pkg/common"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// ErrNodeNotInGraph marks an expansion request for a node the graph does not
// contain. This is a caller bug, not a degraded-content condition, so it
// aborts the whole operation.
var ErrNodeNotInGraph = errors.New("node not present in graph")

// Source resolves an article title to its content record: summary metadata
// plus the ordered titles it links to. A title that does not resolve yields an
// error wrapping common.ErrNotFound; every other failure is treated as
// transient.
type Source interface {
	FetchContent(ctx context.Context, title string) (*common.PageContent, error)
}

const (
	defaultMaxConcurrentFetches = 12
	defaultFetchTimeout         = 10 * time.Second
	defaultBuildBudget          = 90 * time.Second
	defaultMaxRetries           = 2
	defaultCacheTTL             = 7 * 24 * time.Hour
	defaultRetryDelay           = 250 * time.Millisecond
)

// Explorer builds and expands bounded knowledge graphs over a content source.
// One Explorer is meant to live for the whole process: its content cache and
// in-flight fetch coalescing are shared across all concurrent build and
// expand calls. The graphs it returns are owned by the caller.
type Explorer struct {
	source Source
	cache  *contentCache
	group  singleflight.Group
	sem    *semaphore.Weighted

	fetchTimeout time.Duration
	buildBudget  time.Duration
	maxRetries   int
	retryDelay   time.Duration
	linksPerNode int
}

// NewExplorerParams configures an Explorer. Zero values fall back to 12
// concurrent fetches, a 10s per-fetch timeout, a 90s build budget, 2 retries
// and a 7 day content TTL.
type NewExplorerParams struct {
	Source               Source
	MaxConcurrentFetches int
	FetchTimeout         time.Duration
	BuildBudget          time.Duration
	MaxRetries           int
	CacheTTL             time.Duration
	// LinksPerNode caps how many outlinks of each article are followed.
	// 0 follows everything the source returns.
	LinksPerNode int
}

// NewExplorer creates an Explorer around the given content source.
func NewExplorer(params NewExplorerParams) *Explorer {
	if params.MaxConcurrentFetches <= 0 {
		params.MaxConcurrentFetches = defaultMaxConcurrentFetches
	}
	if params.FetchTimeout <= 0 {
		params.FetchTimeout = defaultFetchTimeout
	}
	if params.BuildBudget <= 0 {
		params.BuildBudget = defaultBuildBudget
	}
	if params.MaxRetries < 0 {
		params.MaxRetries = defaultMaxRetries
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = defaultCacheTTL
	}
	return &Explorer{
		source:       params.Source,
		cache:        newContentCache(params.CacheTTL),
		sem:          semaphore.NewWeighted(int64(params.MaxConcurrentFetches)),
		fetchTimeout: params.FetchTimeout,
		buildBudget:  params.BuildBudget,
		maxRetries:   params.MaxRetries,
		retryDelay:   defaultRetryDelay,
		linksPerNode: params.LinksPerNode,
	}
}

// Flush drops all cached content. Shutdown hook; the next fetch of any
// article goes back to the source.
func (e *Explorer) Flush() {
	e.cache.flush()
}

// CacheSize returns how many articles are currently cached.
func (e *Explorer) CacheSize() int {
	return e.cache.size()
}
