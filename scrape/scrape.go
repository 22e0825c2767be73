// Package scrape fetches tab pages and digs the raw chord text out of
// them. Ultimate-Guitar pages carry the tab in an embedded JSON store;
// everything else falls back to the first <pre> block.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// RawTab is the unparsed result of one page fetch.
type RawTab struct {
	Content string
	Title   string
	Artist  string
	URL     string
	Source  string
}

var ugStoreRe = regexp.MustCompile(`(?s)window\.UGAPP\.store\.page\s*=\s*(\{.*?\});`)

// FetchTab downloads url and extracts the raw tab text.
func FetchTab(ctx context.Context, url string) (*RawTab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %v: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %v: status %v", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", url, err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", url, err)
	}

	if strings.Contains(url, "ultimate-guitar.com") {
		if tab := extractUltimateGuitar(doc, url); tab != nil {
			return tab, nil
		}
	}

	if tab := extractPre(doc, url); tab != nil {
		return tab, nil
	}
	return nil, fmt.Errorf("could not extract tab content from %v", url)
}

// extractUltimateGuitar pulls the tab out of the page's JSON store.
// The shape is data.tab_view.wiki_tab.content plus data.tab metadata.
func extractUltimateGuitar(doc *html.Node, url string) *RawTab {
	var store string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "script" {
			if m := ugStoreRe.FindStringSubmatch(textContent(n)); m != nil {
				store = m[1]
				return false
			}
		}
		return true
	})
	if store == "" {
		return nil
	}

	var page struct {
		Data struct {
			TabView struct {
				WikiTab struct {
					Content string `json:"content"`
				} `json:"wiki_tab"`
			} `json:"tab_view"`
			Tab struct {
				SongName   string `json:"song_name"`
				ArtistName string `json:"artist_name"`
			} `json:"tab"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(store), &page); err != nil {
		return nil
	}

	content := page.Data.TabView.WikiTab.Content
	if content == "" {
		return nil
	}
	// UG wraps chords in [ch]...[/ch] and blocks in [tab]...[/tab]
	content = strings.NewReplacer(
		"[ch]", "[", "[/ch]", "]",
		"[tab]", "", "[/tab]", "",
	).Replace(content)

	return &RawTab{
		Content: content,
		Title:   page.Data.Tab.SongName,
		Artist:  page.Data.Tab.ArtistName,
		URL:     url,
		Source:  "Ultimate-Guitar",
	}
}

func extractPre(doc *html.Node, url string) *RawTab {
	pre := findFirst(doc, "pre")
	if pre == nil {
		return nil
	}

	title := "Unknown Song"
	if t := findFirst(doc, "title"); t != nil {
		if s := strings.TrimSpace(textContent(t)); s != "" {
			title = s
		}
	}

	return &RawTab{
		Content: textContent(pre),
		Title:   title,
		Artist:  "Unknown Artist",
		URL:     url,
		Source:  "Generic",
	}
}

// walk visits nodes depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func findFirst(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
