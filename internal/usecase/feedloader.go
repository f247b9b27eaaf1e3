package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"feedview/internal/domain"
	"feedview/internal/normalizer"
)

// FeedLoader выполняет полный цикл: загрузка, разбор и нормализация ленты.
type FeedLoader struct {
	fetcher   FeedFetcher
	parser    FeedParser
	log       *slog.Logger
	feedNames map[string]string
}

// NewFeedLoader создает загрузчик. feedNames сопоставляет URL с именем ленты для логов.
func NewFeedLoader(
	fetcher FeedFetcher,
	parser FeedParser,
	log *slog.Logger,
	feedNames map[string]string,
) *FeedLoader {
	return &FeedLoader{
		fetcher:   fetcher,
		parser:    parser,
		log:       log,
		feedNames: feedNames,
	}
}

// Load возвращает записи ленты.
// Ошибка загрузки возвращается вызывающему (domain.ErrFetch).
// Ошибка разбора не фатальна: лента считается пустой.
func (l *FeedLoader) Load(ctx context.Context, feedURL string) ([]domain.Entry, error) {
	start := time.Now()
	feedName := l.extractFeedName(feedURL)
	log := l.log.With(
		slog.String("component", "feed-loader"),
		slog.String("feed", feedName),
		slog.String("url", feedURL),
	)

	log.Info("Loading feed started")

	reader, err := l.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetch failed for %s: %w", feedName, err)
	}
	defer reader.Close()

	doc, err := l.parser.Parse(ctx, reader)
	switch {
	case errors.Is(err, domain.ErrParse):
		log.Warn("Feed is not valid XML, showing no entries",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		return []domain.Entry{}, nil
	case err != nil:
		log.Error("Feed reading failed",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("read failed for %s: %w", feedName, err)
	}

	entries := normalizer.Normalize(doc)
	if len(entries) == 0 {
		log.Warn("Feed has neither entry nor item elements", slog.String("feed_type", string(doc.Type)))
	}

	log.Info("Feed loaded successfully",
		slog.String("feed_type", string(doc.Type)),
		slog.Int("items_found", len(entries)),
		slog.Duration("duration", time.Since(start)),
	)
	return entries, nil
}

// extractFeedName возвращает имя ленты из конфигурации или хост из URL.
func (l *FeedLoader) extractFeedName(feedURL string) string {
	if name, ok := l.feedNames[feedURL]; ok {
		return name
	}
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
