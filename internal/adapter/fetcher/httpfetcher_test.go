package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedview/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.UserAgent())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<rss></rss>"))
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(5*time.Second, logger)

	reader, err := fetcher.Fetch(context.Background(), testServer.URL)

	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "<rss></rss>", string(data))
}

func TestHTTPFetcher_Fetch_NotFound(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(5*time.Second, logger)

	reader, err := fetcher.Fetch(context.Background(), testServer.URL)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetch))
	assert.Contains(t, err.Error(), "unexpected status code: 404")
	assert.Nil(t, reader)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(5*time.Second, logger)

	reader, err := fetcher.Fetch(context.Background(), "invalid://url")

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Nil(t, reader)
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer testServer.Close()
	defer close(release)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(50*time.Millisecond, logger)

	reader, err := fetcher.Fetch(context.Background(), testServer.URL)

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Nil(t, reader)
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("slow response"))
	}))
	defer testServer.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := NewHTTPFetcher(5*time.Second, logger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, err := fetcher.Fetch(ctx, testServer.URL)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, reader)
}
