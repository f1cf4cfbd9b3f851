package common

import "errors"

// ErrNotFound marks an article title that does not resolve at the content
// source. Callers should treat it as a terminal answer, not a transient
// failure.
var ErrNotFound = errors.New("article not found")

// PageContent is the fetched record for one article: its summary metadata
// plus the ordered titles of the articles it links to.
type PageContent struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	URL      string   `json:"url"`
	PageID   *int64   `json:"page_id,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Outlinks []string `json:"outlinks"`
}

// SearchResult is one candidate article returned by a term search.
type SearchResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	PageID    *int64 `json:"page_id,omitempty"`
	WordCount int    `json:"word_count"`
	Size      int    `json:"size"`
}
