package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"feedview/internal/domain"
	"feedview/internal/usecase"
	"feedview/internal/worker"
)

const maxBodyBytes = 64 << 10

type dispatcher interface {
	Submit(ctx context.Context, ev usecase.Event) (usecase.Page, error)
}

type Handler struct {
	log    *slog.Logger
	events dispatcher
}

func NewHandler(log *slog.Logger, events dispatcher) *Handler {
	return &Handler{
		log:    log,
		events: events,
	}
}

type loadFeedRequest struct {
	URL string `json:"url"`
}

type filterRequest struct {
	Kind  string `json:"kind"`
	Query string `json:"query"`
}

type toggleRequest struct {
	Link string `json:"link"`
}

type errorResponse struct {
	Error string        `json:"error"`
	Page  *usecase.Page `json:"page,omitempty"`
}

// getPage - GET /api/page
func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "transport.http/getPage", usecase.Render{})
}

// loadFeed - POST /api/feed
func (h *Handler) loadFeed(w http.ResponseWriter, r *http.Request) {
	var req loadFeedRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.dispatch(w, r, "transport.http/loadFeed", usecase.LoadFeed{URL: req.URL})
}

// setFilter - POST /api/filter
func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !h.decode(w, r, &req) {
		return
	}
	kind, ok := domain.ParseFilterKind(req.Kind)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid 'kind' parameter", nil)
		return
	}
	h.dispatch(w, r, "transport.http/setFilter", usecase.SetFilter{
		Filter: domain.Filter{Kind: kind, Query: req.Query},
	})
}

// nextPage - POST /api/page/next
func (h *Handler) nextPage(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "transport.http/nextPage", usecase.Navigate{Direction: usecase.Next})
}

// prevPage - POST /api/page/prev
func (h *Handler) prevPage(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "transport.http/prevPage", usecase.Navigate{Direction: usecase.Prev})
}

// toggleFavorite - POST /api/favorites/toggle
func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Link == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'link' parameter", nil)
		return
	}
	h.dispatch(w, r, "transport.http/toggleFavorite", usecase.ToggleFavorite{Link: req.Link})
}

// healthCheck - проверка состояния сервиса
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, op string, ev usecase.Event) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	page, err := h.events.Submit(r.Context(), ev)
	if err != nil {
		code := statusFor(err)
		log.Warn("Event failed", slog.Int("status_code", code), slog.Any("error", err))
		if errors.Is(err, worker.ErrStopped) || errors.Is(err, context.Canceled) {
			respondWithError(w, code, err.Error(), nil)
			return
		}
		respondWithError(w, code, err.Error(), &page)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.log.Warn("invalid request body",
			slog.String("path", r.URL.Path),
			slog.String("request_id", getRequestID(r.Context())),
			slog.Any("error", err),
		)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, worker.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message string, page *usecase.Page) {
	respondWithJSON(w, code, errorResponse{Error: message, Page: page})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
