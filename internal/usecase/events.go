package usecase

import "feedview/internal/domain"

// Event - сообщение от рендерера к ядру. Обрабатывается Viewer.Handle.
type Event interface {
	eventName() string
}

// Direction задает направление навигации по страницам.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// LoadFeed загружает ленту по адресу и заменяет коллекцию.
type LoadFeed struct {
	URL string
}

// SetFilter применяет фильтр ко всей коллекции.
type SetFilter struct {
	Filter domain.Filter
}

// ToggleFavorite инвертирует отметку избранного для ссылки.
type ToggleFavorite struct {
	Link string
}

// Navigate перелистывает страницу.
type Navigate struct {
	Direction Direction
}

// Render ничего не меняет и возвращает текущую страницу.
type Render struct{}

func (LoadFeed) eventName() string       { return "load_feed" }
func (SetFilter) eventName() string      { return "set_filter" }
func (ToggleFavorite) eventName() string { return "toggle_favorite" }
func (Navigate) eventName() string       { return "navigate" }
func (Render) eventName() string         { return "render" }

// EventName возвращает имя события для логов.
func EventName(ev Event) string {
	if ev == nil {
		return "nil"
	}
	return ev.eventName()
}
