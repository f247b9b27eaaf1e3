package usecase

import (
	"context"
	"io"

	"feedview/internal/domain"
)

// FeedFetcher загружает сырые данные ленты.
// Возвращает io.ReadCloser, который должен быть закрыт после использования.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser строит дерево документа из сырых данных.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) (*domain.Document, error)
}

// FavoriteStore хранит отметки избранного по ссылке записи.
type FavoriteStore interface {
	IsFavorite(ctx context.Context, link string) bool
	SetFavorite(ctx context.Context, link string, favorite bool) error
	Flags(ctx context.Context, links []string) map[string]bool
}

// EntryLoader превращает адрес ленты в нормализованные записи.
type EntryLoader interface {
	Load(ctx context.Context, url string) ([]domain.Entry, error)
}
