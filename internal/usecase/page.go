package usecase

import (
	"context"

	"feedview/internal/domain"
	"feedview/internal/viewstate"
)

// Page - снимок состояния, который получает рендерер.
type Page struct {
	FeedURL           string          `json:"feed_url"`
	Entries           []domain.Entry  `json:"entries"`
	Favorites         map[string]bool `json:"favorites"`
	Filter            domain.Filter   `json:"filter"`
	CurrentPage       int             `json:"current_page"`
	TotalPages        int             `json:"total_pages"`
	HasPrev           bool            `json:"has_prev"`
	HasNext           bool            `json:"has_next"`
	PaginationVisible bool            `json:"pagination_visible"`
	FilteredCount     int             `json:"filtered_count"`
	TotalCount        int             `json:"total_count"`
}

// buildPage собирает снимок текущей страницы с флагами избранного.
func buildPage(ctx context.Context, state *viewstate.State, favorites FavoriteStore, feedURL string) Page {
	entries := state.CurrentPageEntries()
	links := make([]string, 0, len(entries))
	for _, e := range entries {
		links = append(links, e.Link)
	}
	return Page{
		FeedURL:           feedURL,
		Entries:           entries,
		Favorites:         favorites.Flags(ctx, links),
		Filter:            state.Filter(),
		CurrentPage:       state.CurrentPage(),
		TotalPages:        state.TotalPages(),
		HasPrev:           state.HasPrev(),
		HasNext:           state.HasNext(),
		PaginationVisible: state.PaginationVisible(),
		FilteredCount:     len(state.FilteredEntries()),
		TotalCount:        len(state.AllEntries()),
	}
}
