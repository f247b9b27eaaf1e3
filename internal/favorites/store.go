// Package favorites хранит пользовательские отметки "избранное" по ссылке записи.
package favorites

import (
	"context"
	"fmt"
	"log/slog"

	"feedview/storage"

	"github.com/samber/lo"
)

// flagValue - значение, которым помечается избранная запись в хранилище.
const flagValue = "true"

// Store отображает ссылку записи на флаг избранного.
// Отметка хранится как запись "true"; снятие отметки удаляет запись.
type Store struct {
	kv  storage.KV
	log *slog.Logger
}

func NewStore(kv storage.KV, log *slog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.With(slog.String("component", "favorites")),
	}
}

// IsFavorite сообщает, отмечена ли ссылка. Ошибка хранилища логируется
// и трактуется как отсутствие отметки.
func (s *Store) IsFavorite(ctx context.Context, link string) bool {
	value, found, err := s.kv.Get(ctx, link)
	if err != nil {
		s.log.Error("Failed to read favorite flag",
			slog.String("link", link),
			slog.Any("error", err),
		)
		return false
	}
	return found && value == flagValue
}

// SetFavorite записывает отметку или удаляет ее.
func (s *Store) SetFavorite(ctx context.Context, link string, favorite bool) error {
	if favorite {
		if err := s.kv.Set(ctx, link, flagValue); err != nil {
			return fmt.Errorf("failed to mark %s as favorite: %w", link, err)
		}
		s.log.Debug("Favorite added", slog.String("link", link))
		return nil
	}
	if err := s.kv.Delete(ctx, link); err != nil {
		return fmt.Errorf("failed to unmark %s as favorite: %w", link, err)
	}
	s.log.Debug("Favorite removed", slog.String("link", link))
	return nil
}

// Toggle инвертирует отметку и возвращает новое состояние.
func (s *Store) Toggle(ctx context.Context, link string) (bool, error) {
	favorite := !s.IsFavorite(ctx, link)
	if err := s.SetFavorite(ctx, link, favorite); err != nil {
		return !favorite, err
	}
	return favorite, nil
}

// Flags возвращает состояние отметок для набора ссылок.
func (s *Store) Flags(ctx context.Context, links []string) map[string]bool {
	return lo.SliceToMap(lo.Uniq(links), func(link string) (string, bool) {
		return link, s.IsFavorite(ctx, link)
	})
}
