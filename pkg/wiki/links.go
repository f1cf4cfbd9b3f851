package wiki

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Namespace and action links that never point at a plain article.
var excludedPrefixes = []string{
	"File:",
	"Category:",
	"Template:",
	"Help:",
	"Special:",
	"Talk:",
	"User:",
	"Wikipedia:",
}

// ExtractLinks walks rendered article HTML and returns the titles of linked
// articles in document order, deduplicated, capped at max. Only anchors whose
// href looks like a plain same-wiki article path are kept; namespace pages,
// anchors, external links and edit actions are dropped.
func ExtractLinks(r io.Reader, max int) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(links) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := anchorHref(n); isArticleHref(href) {
				if title := titleFromHref(href); title != "" {
					if _, ok := seen[title]; !ok {
						seen[title] = struct{}{}
						links = append(links, title)
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links, nil
}

func anchorHref(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			return attr.Val
		}
	}
	return ""
}

// isArticleHref reports whether href points at a plain article on the same
// wiki: "./Title" (Parsoid) or "/wiki/Title", with no namespace colon,
// anchor, external scheme or edit action.
func isArticleHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "//") {
		return false
	}
	if strings.Contains(href, "action=") || strings.Contains(href, "edit") {
		return false
	}
	for _, prefix := range excludedPrefixes {
		if strings.Contains(href, prefix) {
			return false
		}
	}
	if !strings.HasPrefix(href, "./") && !strings.HasPrefix(href, "/wiki/") {
		return false
	}
	last := href[strings.LastIndex(href, "/")+1:]
	return !strings.Contains(last, ":")
}

// titleFromHref turns an article href into a display title, or "" when the
// link should be skipped.
func titleFromHref(href string) string {
	var rawTitle string
	switch {
	case strings.HasPrefix(href, "./"):
		rawTitle = href[2:]
	case strings.HasPrefix(href, "/wiki/"):
		rawTitle = href[len("/wiki/"):]
	default:
		return ""
	}

	// Strip query parameters and anchors.
	if idx := strings.IndexAny(rawTitle, "?#"); idx != -1 {
		rawTitle = rawTitle[:idx]
	}

	decoded, err := url.PathUnescape(rawTitle)
	if err != nil {
		decoded = rawTitle
	}
	title := strings.ReplaceAll(decoded, "_", " ")

	// Very short titles and list pages add noise, not structure.
	if len([]rune(title)) < 2 || strings.HasPrefix(title, "List of") {
		return ""
	}
	return title
}
