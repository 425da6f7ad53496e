package handlers

import (
	"net/http"

	"github.com/shaONme/padel-admin/middleware"
	"github.com/shaONme/padel-admin/models"
	"github.com/shaONme/padel-admin/services"
)

// DraftHandler обслуживает черновик турнира оператора. Все маршруты
// требуют заголовок идентификации: черновик привязан к оператору.
type DraftHandler struct {
	draftService *services.DraftService
}

func NewDraftHandler(draftService *services.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// GetHandler обрабатывает GET /draft.
func (h *DraftHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	view, err := h.draftService.View(r.Context(), identity.TgID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PATCH /draft: меняет имя, режим, тип
// подсчёта и лимиты. Отсутствующие в теле поля не трогаются.
func (h *DraftHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var input services.UpdateFieldsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.draftService.UpdateFields(r.Context(), identity.TgID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SearchHandler обрабатывает GET /draft/search?q=: поиск кандидатов,
// уже выбранные игроки в выдачу не попадают.
func (h *DraftHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	players, err := h.draftService.SearchParticipants(r.Context(), identity.TgID, identity, r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ToggleHandler обрабатывает POST /draft/participants: добавляет игрока
// в выбранные или убирает его. Тело — карточка игрока из результатов
// поиска или ростера.
func (h *DraftHandler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var player models.Player
	if err := readJSON(w, r, &player); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.draftService.ToggleParticipant(r.Context(), identity.TgID, player)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReorderHandler обрабатывает PUT /draft/participants/order:
// явный перенос одного выбранного участника с позиции from на to.
func (h *DraftHandler) ReorderHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var input struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.draftService.ReorderParticipants(r.Context(), identity.TgID, input.From, input.To)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearHandler обрабатывает DELETE /draft/participants.
func (h *DraftHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	view, err := h.draftService.ClearParticipants(r.Context(), identity.TgID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitHandler обрабатывает POST /draft/submit: одна отправка черновика
// на бэкенд. Успех возвращает созданный турнир, ошибка — текст причины.
func (h *DraftHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	tournament, err := h.draftService.Submit(r.Context(), identity.TgID, identity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
