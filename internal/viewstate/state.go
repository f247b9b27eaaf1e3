// Package viewstate хранит загруженную коллекцию записей, активный фильтр и
// текущую страницу. Все операции тотальны: выход за границы страниц
// игнорируется, ошибок нет.
package viewstate

import (
	"context"
	"slices"
	"strings"

	"feedview/internal/domain"

	"github.com/samber/lo"
)

// EntriesPerPage - фиксированный размер страницы.
const EntriesPerPage = 10

// FavoriteChecker отвечает на вопрос, отмечена ли ссылка как избранная.
type FavoriteChecker interface {
	IsFavorite(ctx context.Context, link string) bool
}

// State не потокобезопасен: им владеет один обработчик событий.
type State struct {
	favorites   FavoriteChecker
	all         []domain.Entry
	filtered    []domain.Entry
	filter      domain.Filter
	currentPage int
}

func New(favorites FavoriteChecker) *State {
	return &State{
		favorites:   favorites,
		all:         []domain.Entry{},
		filtered:    []domain.Entry{},
		filter:      domain.Filter{Kind: domain.FilterAll},
		currentPage: 1,
	}
}

// LoadEntries заменяет коллекцию целиком и сбрасывает фильтр и страницу.
func (s *State) LoadEntries(entries []domain.Entry) {
	s.all = slices.Clone(entries)
	if s.all == nil {
		s.all = []domain.Entry{}
	}
	s.filter = domain.Filter{Kind: domain.FilterAll}
	s.filtered = slices.Clone(s.all)
	s.currentPage = 1
}

// ApplyFilter пересчитывает отфильтрованную коллекцию из полной и сбрасывает страницу.
// Фильтры не комбинируются: каждый применяется ко всей коллекции.
// Неизвестный вид фильтра трактуется как FilterAll.
func (s *State) ApplyFilter(ctx context.Context, f domain.Filter) {
	switch f.Kind {
	case domain.FilterFavorites:
		s.filtered = lo.Filter(s.all, func(e domain.Entry, _ int) bool {
			return s.favorites.IsFavorite(ctx, e.Link)
		})
		s.filter = domain.Filter{Kind: domain.FilterFavorites}
	case domain.FilterSearch:
		query := strings.ToLower(f.Query)
		s.filtered = lo.Filter(s.all, func(e domain.Entry, _ int) bool {
			return matches(e, query)
		})
		s.filter = domain.Filter{Kind: domain.FilterSearch, Query: f.Query}
	default:
		s.filtered = slices.Clone(s.all)
		s.filter = domain.Filter{Kind: domain.FilterAll}
	}
	s.currentPage = 1
}

// matches ищет подстроку без учета регистра в заголовке или описании.
// Заглушки отсутствующих полей в поиске не участвуют.
func matches(e domain.Entry, lowerQuery string) bool {
	return strings.Contains(searchable(e.Title, domain.FallbackTitle), lowerQuery) ||
		strings.Contains(searchable(e.Summary, domain.FallbackSummary), lowerQuery)
}

func searchable(value, fallback string) string {
	if value == fallback {
		return ""
	}
	return strings.ToLower(value)
}

// CurrentPageEntries возвращает записи текущей страницы. Срез может быть пустым.
func (s *State) CurrentPageEntries() []domain.Entry {
	start := (s.currentPage - 1) * EntriesPerPage
	if start >= len(s.filtered) {
		return []domain.Entry{}
	}
	end := min(start+EntriesPerPage, len(s.filtered))
	return slices.Clone(s.filtered[start:end])
}

// NextPage переходит на следующую страницу, если она существует.
func (s *State) NextPage() {
	if s.currentPage < s.pageCount() {
		s.currentPage++
	}
}

// PrevPage переходит на предыдущую страницу, если текущая не первая.
func (s *State) PrevPage() {
	if s.currentPage > 1 {
		s.currentPage--
	}
}

// PaginationVisible сообщает, что записей больше, чем помещается на одну страницу.
func (s *State) PaginationVisible() bool {
	return len(s.filtered) > EntriesPerPage
}

func (s *State) pageCount() int {
	return (len(s.filtered) + EntriesPerPage - 1) / EntriesPerPage
}

// TotalPages возвращает число страниц для отображения: не меньше 1.
func (s *State) TotalPages() int {
	return max(1, s.pageCount())
}

func (s *State) CurrentPage() int { return s.currentPage }

func (s *State) HasPrev() bool { return s.currentPage > 1 }

func (s *State) HasNext() bool { return s.currentPage < s.pageCount() }

func (s *State) Filter() domain.Filter { return s.filter }

// AllEntries возвращает копию полной коллекции.
func (s *State) AllEntries() []domain.Entry { return slices.Clone(s.all) }

// FilteredEntries возвращает копию отфильтрованной коллекции.
func (s *State) FilteredEntries() []domain.Entry { return slices.Clone(s.filtered) }
