package explorer

import (
	"testing"
	"time"

	"wikigraph/pkg/common"
)

func TestContentCacheTTL(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cache := newContentCache(time.Hour)
	cache.now = func() time.Time { return now }

	cache.put("Atom", &common.PageContent{Title: "Atom", Summary: "old"})

	if _, ok := cache.get("Atom"); !ok {
		t.Fatal("fresh entry must be served")
	}

	now = now.Add(30 * time.Minute)
	if _, ok := cache.get("Atom"); !ok {
		t.Error("entry within TTL must be served")
	}

	now = now.Add(31 * time.Minute)
	if _, ok := cache.get("Atom"); ok {
		t.Error("expired entry must not be served")
	}
	if cache.size() != 0 {
		t.Errorf("cache size = %d, want 0 after expiry eviction", cache.size())
	}
}

func TestContentCacheRefetchReplacesEntry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cache := newContentCache(time.Hour)
	cache.now = func() time.Time { return now }

	stale := &common.PageContent{Title: "Atom", Summary: "old"}
	cache.put("Atom", stale)

	now = now.Add(2 * time.Hour)
	cache.put("Atom", &common.PageContent{Title: "Atom", Summary: "new"})

	content, ok := cache.get("Atom")
	if !ok {
		t.Fatal("replacement entry must be served")
	}
	if content.Summary != "new" {
		t.Errorf("summary = %q, want %q", content.Summary, "new")
	}
	if stale.Summary != "old" {
		t.Error("prior entry must stay immutable")
	}
}
