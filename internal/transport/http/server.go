package http

import (
	"log/slog"
	"net/http"
)

// NewServer регистрирует эндпоинты API рендерера и подключает middleware.
func NewServer(log *slog.Logger, h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/page", h.getPage)
	mux.HandleFunc("POST /api/feed", h.loadFeed)
	mux.HandleFunc("POST /api/filter", h.setFilter)
	mux.HandleFunc("POST /api/page/next", h.nextPage)
	mux.HandleFunc("POST /api/page/prev", h.prevPage)
	mux.HandleFunc("POST /api/favorites/toggle", h.toggleFavorite)
	mux.HandleFunc("GET /api/health", h.healthCheck)
	var handler http.Handler = mux
	handler = loggingMiddleware(log)(handler)
	handler = requestIDMiddleware()(handler)
	handler = corsMiddleware()(handler)
	return handler
}
