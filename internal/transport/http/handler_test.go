package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedview/internal/adapter/fetcher"
	"feedview/internal/adapter/parser"
	"feedview/internal/domain"
	"feedview/internal/favorites"
	"feedview/internal/usecase"
	"feedview/internal/worker"
	"feedview/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssFeed(n int) string {
	var b strings.Builder
	b.WriteString(`<rss version="2.0"><channel><title>Test</title>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://example.com/%d</link><description>Body %d</description><pubDate>Mon, 02 Jan 2006 15:04:05 MST</pubDate></item>`, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

type testEnv struct {
	api   *httptest.Server
	feeds *httptest.Server
	loop  *worker.Loop
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	feeds := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			w.Write([]byte(rssFeed(23)))
		case "/broken.xml":
			w.Write([]byte("<rss><channel>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	loader := usecase.NewFeedLoader(fetcher.NewHTTPFetcher(5*time.Second, logger), parser.NewXMLParser(logger), logger, nil)
	store := favorites.NewStore(storage.NewMemoryKV(), logger)
	loop := worker.New(usecase.NewViewer(loader, store, logger), 0, logger)
	loop.Start()
	api := httptest.NewServer(NewServer(logger, NewHandler(logger, loop)))
	env := &testEnv{api: api, feeds: feeds, loop: loop}
	t.Cleanup(func() {
		api.Close()
		loop.Stop()
		feeds.Close()
	})
	return env
}

func (e *testEnv) post(t *testing.T, path, body string) (*http.Response, usecase.Page) {
	t.Helper()
	resp, err := http.Post(e.api.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp, decodePage(t, resp)
}

func decodePage(t *testing.T, resp *http.Response) usecase.Page {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string        `json:"error"`
			Page  *usecase.Page `json:"page"`
		}
		require.NoError(t, json.Unmarshal(data, &errResp))
		require.NotEmpty(t, errResp.Error)
		if errResp.Page != nil {
			return *errResp.Page
		}
		return usecase.Page{}
	}
	var page usecase.Page
	require.NoError(t, json.Unmarshal(data, &page))
	return page
}

func TestAPI_LoadNavigateFilter(t *testing.T) {
	env := newTestEnv(t)

	resp, page := env.post(t, "/api/feed", fmt.Sprintf(`{"url": %q}`, env.feeds.URL+"/feed.xml"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
	assert.Equal(t, 23, page.TotalCount)
	assert.Len(t, page.Entries, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.PaginationVisible)

	_, page = env.post(t, "/api/page/next", "")
	_, page = env.post(t, "/api/page/next", "")
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Entries, 3)
	_, page = env.post(t, "/api/page/prev", "")
	assert.Equal(t, 2, page.CurrentPage)

	resp, page = env.post(t, "/api/filter", `{"kind": "search", "query": "item 1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 11, page.FilteredCount)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, domain.Filter{Kind: domain.FilterSearch, Query: "item 1"}, page.Filter)
}

func TestAPI_Favorites(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/api/feed", fmt.Sprintf(`{"url": %q}`, env.feeds.URL+"/feed.xml"))

	resp, page := env.post(t, "/api/favorites/toggle", `{"link": "https://example.com/7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, page.Favorites["https://example.com/7"])

	_, page = env.post(t, "/api/filter", `{"kind": "favorites"}`)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "Item 7", page.Entries[0].Title)

	_, page = env.post(t, "/api/filter", `{"kind": "all"}`)
	assert.Equal(t, 23, page.FilteredCount)
}

func TestAPI_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/api/feed", fmt.Sprintf(`{"url": %q}`, env.feeds.URL+"/feed.xml"))

	resp, _ := env.post(t, "/api/feed", `{"url": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, page := env.post(t, "/api/feed", fmt.Sprintf(`{"url": %q}`, env.feeds.URL+"/missing.xml"))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 23, page.TotalCount, "failed fetch keeps the previous feed")

	resp, _ = env.post(t, "/api/filter", `{"kind": "starred"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.post(t, "/api/favorites/toggle", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.post(t, "/api/filter", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_BrokenFeedIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, page := env.post(t, "/api/feed", fmt.Sprintf(`{"url": %q}`, env.feeds.URL+"/broken.xml"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestAPI_GetPageAndHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/api/page")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, resp)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Empty(t, page.Entries)

	resp, err = http.Get(env.api.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_StoppedLoop(t *testing.T) {
	env := newTestEnv(t)
	env.loop.Stop()

	resp, err := http.Get(env.api.URL + "/api/page")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
