package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"feedview/internal/domain"
)

const userAgent = "feedview/1.0 (+rss; atom)"

// HTTPFetcher загружает ленты по HTTP.
// Сетевые ошибки и ответы с кодом, отличным от 200, оборачивают domain.ErrFetch.
type HTTPFetcher struct {
	client *http.Client
	log    *slog.Logger
}

// NewHTTPFetcher создает загрузчик с указанным таймаутом запроса.
// Нулевой таймаут означает отсутствие ограничения, кроме контекста вызова.
func NewHTTPFetcher(timeout time.Duration, log *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch выполняет GET-запрос и возвращает тело ответа.
// Тело должно быть закрыто вызывающей стороной.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	log := f.log.With(slog.String("component", "fetcher"), slog.String("url", url))
	log.Info("Fetching URL")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to create request for url %s: %v", domain.ErrFetch, url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/atom+xml, application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")
	resp, err := f.client.Do(req)
	if err != nil {
		log.Error(
			"HTTP request failed",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: failed to fetch url %s: %w", domain.ErrFetch, url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.Error(
			"Unexpected status code",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: unexpected status code: %d for url %s", domain.ErrFetch, resp.StatusCode, url)
	}
	log.Info("Successfully fetched URL")
	return resp.Body, nil
}
