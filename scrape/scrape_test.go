package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ugPage = `<html><head><title>Song tab</title></head><body>
<script>
window.UGAPP = window.UGAPP || {};
window.UGAPP.store.page = {"data":{"tab_view":{"wiki_tab":{"content":"[tab][ch]G[/ch]Hello [ch]C[/ch]World[/tab]"}},"tab":{"song_name":"Hello World","artist_name":"The Greeters"}}};
</script>
<pre>should not be used</pre>
</body></html>`

const prePage = `<html><head><title> Wonderwall chords </title></head><body>
<div><pre>[Em7]Today is [G]gonna be the day</pre></div>
</body></html>`

func TestFetchTabUltimateGuitar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ugPage)
	}))
	defer srv.Close()

	tab, err := FetchTab(context.Background(), srv.URL+"/tabs.ultimate-guitar.com/t/song")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("[G]Hello [C]World", tab.Content)
	assert.Equal("Hello World", tab.Title)
	assert.Equal("The Greeters", tab.Artist)
	assert.Equal("Ultimate-Guitar", tab.Source)
}

func TestFetchTabGenericPre(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, prePage)
	}))
	defer srv.Close()

	tab, err := FetchTab(context.Background(), srv.URL)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("[Em7]Today is [G]gonna be the day", tab.Content)
	assert.Equal("Wonderwall chords", tab.Title)
	assert.Equal("Unknown Artist", tab.Artist)
	assert.Equal("Generic", tab.Source)
}

func TestFetchTabNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	_, err := FetchTab(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchTabHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchTab(context.Background(), srv.URL)
	assert.Error(t, err)
}

const searchPage = `<html><body>
<div class="results">
  <div class="result results_links">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Ftabs.example.com%2Fripple">Ripple chords</a>
    <div class="result__snippet">Play Ripple by Grateful Dead</div>
  </div>
  <div class="result results_links">
    <a class="result__a" href="https://other.example.com/t">Other hit</a>
    <div class="result__snippet">Something else</div>
  </div>
  <div class="result results_links">
    <a class="result__a" href="https://third.example.com/t">Third</a>
  </div>
</div>
</body></html>`

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "guitar chords")
		io.WriteString(w, searchPage)
	}))
	defer srv.Close()

	old := searchBaseURL
	searchBaseURL = srv.URL + "/html/"
	defer func() { searchBaseURL = old }()

	results, err := Search(context.Background(), "ripple grateful dead", 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(results, 2)
	assert.Equal("Ripple chords", results[0].Title)
	assert.Equal("https://tabs.example.com/ripple", results[0].URL)
	assert.Equal("Play Ripple by Grateful Dead", results[0].Snippet)
	assert.Equal("https://other.example.com/t", results[1].URL)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	old := searchBaseURL
	searchBaseURL = srv.URL
	defer func() { searchBaseURL = old }()

	_, err := Search(context.Background(), "anything", 3)
	assert.Error(t, err)
}
