package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wikigraph/pkg/common"

	"golang.org/x/sync/errgroup"
)

const (
	defaultRestURL   = "https://en.wikipedia.org/api/rest_v1"
	defaultActionURL = "https://en.wikipedia.org/w/api.php"
	defaultUserAgent = "wikigraph/1.0 (knowledge graph explorer)"
	defaultTimeout   = 10 * time.Second
	defaultMaxLinks  = 50
)

// Client talks to the Wikipedia REST and Action APIs. It is safe for
// concurrent use.
type Client struct {
	restURL    string
	actionURL  string
	userAgent  string
	maxLinks   int
	httpClient *http.Client
}

// NewClientParams configures a Client. Zero values fall back to the English
// Wikipedia endpoints, a 10s per-call timeout and 50 links per article.
type NewClientParams struct {
	RestURL   string
	ActionURL string
	UserAgent string
	Timeout   time.Duration
	MaxLinks  int
}

// NewClient creates a Wikipedia API client.
func NewClient(params NewClientParams) *Client {
	if params.RestURL == "" {
		params.RestURL = defaultRestURL
	}
	if params.ActionURL == "" {
		params.ActionURL = defaultActionURL
	}
	if params.UserAgent == "" {
		params.UserAgent = defaultUserAgent
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultTimeout
	}
	if params.MaxLinks <= 0 {
		params.MaxLinks = defaultMaxLinks
	}
	return &Client{
		restURL:   strings.TrimSuffix(params.RestURL, "/"),
		actionURL: params.ActionURL,
		userAgent: params.UserAgent,
		maxLinks:  params.MaxLinks,
		httpClient: &http.Client{
			Timeout: params.Timeout,
		},
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// Search queries the Action API for articles matching term.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]common.SearchResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("srprop", "snippet|titlesnippet|size|wordcount")
	params.Set("srenablerewrites", "true")

	resp, err := c.get(ctx, c.actionURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %d", term, resp.StatusCode)
	}

	var body struct {
		Query struct {
			Search []struct {
				Title     string `json:"title"`
				PageID    int64  `json:"pageid"`
				WordCount int    `json:"wordcount"`
				Size      int    `json:"size"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("search %q: failed to decode response: %w", term, err)
	}

	results := make([]common.SearchResult, 0, len(body.Query.Search))
	for _, hit := range body.Query.Search {
		pageID := hit.PageID
		results = append(results, common.SearchResult{
			Title:     hit.Title,
			URL:       ArticleURL(hit.Title),
			PageID:    &pageID,
			WordCount: hit.WordCount,
			Size:      hit.Size,
		})
	}
	return results, nil
}

// Summary fetches an article's summary metadata without its outlinks.
// A missing article yields an error wrapping common.ErrNotFound.
func (c *Client) Summary(ctx context.Context, title string) (*common.PageContent, error) {
	resp, err := c.get(ctx, c.restURL+"/page/summary/"+encodeTitle(title))
	if err != nil {
		return nil, fmt.Errorf("summary %q: %w", title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("summary %q: %w", title, common.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary %q: unexpected status %d", title, resp.StatusCode)
	}

	var body struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("summary %q: failed to decode response: %w", title, err)
	}

	content := &common.PageContent{
		Title:   body.Title,
		Summary: body.Extract,
		URL:     body.ContentURLs.Desktop.Page,
	}
	if content.Title == "" {
		content.Title = title
	}
	if content.URL == "" {
		content.URL = ArticleURL(content.Title)
	}

	// Page id and thumbnail come from the same Action API response; losing
	// them is not worth failing the whole fetch over.
	if pageID, imageURL, err := c.pageMeta(ctx, title); err == nil {
		content.PageID = pageID
		content.ImageURL = imageURL
	}

	return content, nil
}

// pageMeta resolves the numeric page id and lead image in one Action API call.
func (c *Client) pageMeta(ctx context.Context, title string) (*int64, string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", title)
	params.Set("prop", "pageimages")
	params.Set("pithumbsize", "300")
	params.Set("pilimit", "1")
	params.Set("redirects", "1")

	resp, err := c.get(ctx, c.actionURL+"?"+params.Encode())
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("page meta %q: unexpected status %d", title, resp.StatusCode)
	}

	var body struct {
		Query struct {
			Pages map[string]struct {
				Thumbnail struct {
					Source string `json:"source"`
				} `json:"thumbnail"`
				PageImage string `json:"pageimage"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", err
	}

	for rawID, page := range body.Query.Pages {
		if rawID == "-1" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			continue
		}
		imageURL := page.Thumbnail.Source
		if imageURL == "" && page.PageImage != "" {
			imageURL = "https://en.wikipedia.org/wiki/Special:FilePath/" + url.PathEscape(page.PageImage)
		}
		return &id, imageURL, nil
	}
	return nil, "", nil
}

// Links fetches an article's rendered HTML and extracts the titles of the
// articles it links to, in document order. A missing article yields an error
// wrapping common.ErrNotFound.
func (c *Client) Links(ctx context.Context, title string) ([]string, error) {
	resp, err := c.get(ctx, c.restURL+"/page/html/"+encodeTitle(title))
	if err != nil {
		return nil, fmt.Errorf("links %q: %w", title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("links %q: %w", title, common.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("links %q: unexpected status %d", title, resp.StatusCode)
	}

	links, err := ExtractLinks(resp.Body, c.maxLinks)
	if err != nil {
		return nil, fmt.Errorf("links %q: %w", title, err)
	}
	return links, nil
}

// FetchContent resolves an article to its full content record: summary
// metadata plus ordered outlink titles, fetched in parallel.
func (c *Client) FetchContent(ctx context.Context, title string) (*common.PageContent, error) {
	var content *common.PageContent
	var links []string

	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		content, err = c.Summary(gCtx, title)
		return err
	})
	eg.Go(func() error {
		var err error
		links, err = c.Links(gCtx, title)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	content.Outlinks = links
	return content, nil
}

// ArticleURL builds the canonical desktop URL for an article title.
func ArticleURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + encodeTitle(title)
}

func encodeTitle(title string) string {
	return url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
}
