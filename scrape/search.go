package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// searchBaseURL is a var so tests can point it at a local server.
var searchBaseURL = "https://html.duckduckgo.com/html/"

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Search queries DuckDuckGo's HTML endpoint, steering results toward tab
// sites the same way a human would type the query.
func Search(ctx context.Context, query string, limit int) ([]Result, error) {
	full := query + " guitar chords ultimate-guitar"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		searchBaseURL+"?q="+url.QueryEscape(full), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %v", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	return parseResults(doc, limit), nil
}

// parseResults reads DuckDuckGo's result markup: each hit is an anchor
// with class result__a, its snippet a sibling with class result__snippet.
func parseResults(doc *html.Node, limit int) []Result {
	var results []Result
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if len(results) >= limit {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, "result") {
			var r Result
			walk(n, func(c *html.Node) bool {
				if c.Type != html.ElementNode {
					return true
				}
				if c.Data == "a" && hasClass(c, "result__a") {
					r.Title = strings.TrimSpace(textContent(c))
					r.URL = cleanResultURL(attr(c, "href"))
				}
				if hasClass(c, "result__snippet") {
					r.Snippet = strings.TrimSpace(textContent(c))
				}
				return true
			})
			if r.URL != "" {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)
	return results
}

// cleanResultURL unwraps DuckDuckGo's redirect links (//duckduckgo.com/l/?uddg=...).
func cleanResultURL(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Path, "/l/") || u.Path == "/l/" {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}
