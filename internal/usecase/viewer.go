package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"feedview/internal/domain"
	"feedview/internal/viewstate"
)

// Viewer - обработчик событий рендерера. Владеет состоянием просмотра.
// Не потокобезопасен: события должны поступать по одному (см. worker.Loop).
type Viewer struct {
	loader    EntryLoader
	favorites FavoriteStore
	state     *viewstate.State
	log       *slog.Logger
	feedURL   string
}

func NewViewer(loader EntryLoader, favorites FavoriteStore, log *slog.Logger) *Viewer {
	return &Viewer{
		loader:    loader,
		favorites: favorites,
		state:     viewstate.New(favorites),
		log:       log.With(slog.String("component", "viewer")),
	}
}

// Handle применяет событие и возвращает страницу для отрисовки.
// При ошибке состояние не меняется, возвращается страница до события.
func (v *Viewer) Handle(ctx context.Context, ev Event) (Page, error) {
	log := v.log.With(slog.String("event", EventName(ev)))
	var err error
	switch e := ev.(type) {
	case LoadFeed:
		err = v.loadFeed(ctx, e.URL)
	case SetFilter:
		v.state.ApplyFilter(ctx, e.Filter)
		log.Debug("Filter applied",
			slog.String("filter", string(v.state.Filter().Kind)),
			slog.Int("count", len(v.state.FilteredEntries())),
		)
	case ToggleFavorite:
		err = v.toggleFavorite(ctx, e.Link)
	case Navigate:
		switch e.Direction {
		case Prev:
			v.state.PrevPage()
		case Next:
			v.state.NextPage()
		default:
			err = fmt.Errorf("unknown navigation direction %q", e.Direction)
		}
	case Render:
	default:
		err = fmt.Errorf("unsupported event %T", ev)
	}
	if err != nil {
		log.Warn("Event rejected", slog.Any("error", err))
	}
	return v.Page(ctx), err
}

func (v *Viewer) loadFeed(ctx context.Context, feedURL string) error {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return domain.ErrInvalidURL
	}
	entries, err := v.loader.Load(ctx, feedURL)
	if err != nil {
		return err
	}
	v.state.LoadEntries(entries)
	v.feedURL = feedURL
	return nil
}

// toggleFavorite не пересчитывает фильтр: запись остается на странице до следующего фильтра.
func (v *Viewer) toggleFavorite(ctx context.Context, link string) error {
	favorite := !v.favorites.IsFavorite(ctx, link)
	if err := v.favorites.SetFavorite(ctx, link, favorite); err != nil {
		return err
	}
	v.log.Info("Favorite toggled",
		slog.String("link", link),
		slog.Bool("favorite", favorite),
	)
	return nil
}

// Page возвращает снимок текущей страницы.
func (v *Viewer) Page(ctx context.Context) Page {
	return buildPage(ctx, v.state, v.favorites, v.feedURL)
}

// FeedURL возвращает адрес последней успешно загруженной ленты.
func (v *Viewer) FeedURL() string { return v.feedURL }
