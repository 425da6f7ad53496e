package services

import (
	"context"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// ChatSource — список чатов оператора на бэкенде.
type ChatSource interface {
	ListChats(ctx context.Context, identity backend.Identity, adminOnly bool) ([]models.Chat, error)
}

// ChatService отдаёт чаты, доступные оператору.
type ChatService struct {
	api ChatSource
}

// NewChatService создаёт ChatService поверх клиента бэкенда.
func NewChatService(api ChatSource) *ChatService {
	return &ChatService{api: api}
}

// ListChats возвращает чаты оператора; роль в каждом чате определяет бэкенд.
func (s *ChatService) ListChats(ctx context.Context, identity backend.Identity, adminOnly bool) ([]models.Chat, error) {
	return s.api.ListChats(ctx, identity, adminOnly)
}
