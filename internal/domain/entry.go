package domain

// Значения, подставляемые вместо отсутствующих полей записи.
const (
	FallbackTitle       = "Sin título"
	FallbackLink        = "#"
	FallbackSummary     = "Sin descripción"
	FallbackPublishedAt = "Fecha desconocida"
)

// Entry представляет одну запись ленты после нормализации.
// Все четыре поля всегда заполнены: значением из источника или заглушкой.
// Link одновременно служит идентификатором записи.
type Entry struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"published_at"`
}

// FilterKind определяет вид фильтра, применяемого к коллекции записей.
type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterFavorites FilterKind = "favorites"
	FilterSearch    FilterKind = "search"
)

// Filter описывает активный фильтр. Query используется только для FilterSearch.
type Filter struct {
	Kind  FilterKind `json:"kind"`
	Query string     `json:"query,omitempty"`
}

// ParseFilterKind разбирает строковое имя фильтра. Пустая строка означает FilterAll.
func ParseFilterKind(s string) (FilterKind, bool) {
	switch FilterKind(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterFavorites:
		return FilterFavorites, true
	case FilterSearch:
		return FilterSearch, true
	default:
		return "", false
	}
}
