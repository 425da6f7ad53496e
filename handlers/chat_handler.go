package handlers

import (
	"net/http"

	"github.com/shaONme/padel-admin/middleware"
	"github.com/shaONme/padel-admin/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ListHandler обрабатывает GET /chats?admin_only=. Маршрут стоит за
// RequireIdentity, так что идентификация здесь уже есть.
func (h *ChatHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	adminOnly := r.URL.Query().Get("admin_only") == "true"

	chats, err := h.chatService.ListChats(r.Context(), identity, adminOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"chats": chats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
