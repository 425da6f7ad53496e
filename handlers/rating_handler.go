package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaONme/padel-admin/middleware"
	"github.com/shaONme/padel-admin/models"
	"github.com/shaONme/padel-admin/services"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// ListModesHandler обрабатывает GET /rating/modes.
func (h *RatingHandler) ListModesHandler(w http.ResponseWriter, r *http.Request) {
	modes, err := h.ratingService.Modes(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"modes": modes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SelectModeHandler обрабатывает GET /rating/{mode}: загружает таблицу
// и возвращает состояние вида (loaded, empty или error) для оператора.
func (h *RatingHandler) SelectModeHandler(w http.ResponseWriter, r *http.Request) {
	mode := models.RatingModeCode(chi.URLParam(r, "mode"))

	view, err := h.ratingService.Select(r.Context(), ratingCallerID(r), mode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ViewHandler обрабатывает GET /rating: текущее состояние вида без запроса
// к бэкенду.
func (h *RatingHandler) ViewHandler(w http.ResponseWriter, r *http.Request) {
	view := h.ratingService.View(ratingCallerID(r))
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ratingCallerID — ключ сессии вида рейтинга. Рейтинг доступен и без
// идентификации, тогда вид общий (ключ 0), как у публичной страницы.
func ratingCallerID(r *http.Request) int64 {
	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		return 0
	}
	return identity.TgID
}
