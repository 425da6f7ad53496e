package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/shaONme/padel-admin/backend"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Заголовки с непрозрачными идентификаторами оператора и чата.
// Значения передаются на бэкенд как есть, админка их не интерпретирует.
const (
	headerUserTgID = "X-User-Tg-Id"
	headerChatID   = "X-Chat-Id"
)

// Identity разбирает заголовки идентификации и кладёт их в контекст
// запроса. Сами заголовки здесь необязательны: обязательность решает
// обработчик через RequireIdentity.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var identity backend.Identity

		if raw := r.Header.Get(headerUserTgID); raw != "" {
			tgID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || tgID <= 0 {
				http.Error(w, "invalid "+headerUserTgID+" header", http.StatusBadRequest)
				return
			}
			identity.TgID = tgID
		}
		if raw := r.Header.Get(headerChatID); raw != "" {
			chatID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "invalid "+headerChatID+" header", http.StatusBadRequest)
				return
			}
			identity.ChatID = chatID
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireIdentity отклоняет запросы без заголовка оператора.
// Вешается на маршруты черновика и чатов.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := GetIdentityFromContext(r.Context())
		if err != nil || identity.TgID == 0 {
			http.Error(w, headerUserTgID+" header is required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentityFromContext достаёт идентификацию запроса из контекста.
func GetIdentityFromContext(ctx context.Context) (backend.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(backend.Identity)
	if !ok {
		return backend.Identity{}, errors.New("identity not found in context")
	}
	return identity, nil
}
