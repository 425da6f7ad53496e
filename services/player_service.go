package services

import (
	"context"
	"strings"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// PlayerSource — операции с игроками на бэкенде.
type PlayerSource interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	SearchPlayers(ctx context.Context, identity backend.Identity, query string) ([]models.Player, error)
	PlayerByTgID(ctx context.Context, tgID int64) (*models.Player, error)
	RegisterPlayer(ctx context.Context, input backend.RegisterPlayerInput) (*models.Player, error)
}

// PlayerService отдаёт ростер игроков. Данные целиком принадлежат
// бэкенду, сервис их только проксирует.
type PlayerService struct {
	api PlayerSource
}

// NewPlayerService создаёт PlayerService поверх клиента бэкенда.
func NewPlayerService(api PlayerSource) *PlayerService {
	return &PlayerService{api: api}
}

// ListPlayers возвращает весь ростер в порядке, заданном бэкендом.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.api.ListPlayers(ctx)
}

// SearchPlayers возвращает игроков по запросу. Пустой запрос — пустой
// результат без обращения к бэкенду.
func (s *PlayerService) SearchPlayers(ctx context.Context, identity backend.Identity, query string) ([]models.Player, error) {
	if query == "" {
		return []models.Player{}, nil
	}
	return s.api.SearchPlayers(ctx, identity, query)
}

// PlayerByTgID возвращает игрока по его telegram id.
func (s *PlayerService) PlayerByTgID(ctx context.Context, tgID int64) (*models.Player, error) {
	if tgID <= 0 {
		return nil, ErrPlayerTgIDRequired
	}
	return s.api.PlayerByTgID(ctx, tgID)
}

// RegisterPlayer создаёт или обновляет запись игрока на бэкенде.
// Имя нормализуется так же, как имя черновика: без окружающих пробелов.
func (s *PlayerService) RegisterPlayer(ctx context.Context, input backend.RegisterPlayerInput) (*models.Player, error) {
	if input.TgID <= 0 {
		return nil, ErrPlayerTgIDRequired
	}
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.DisplayName == "" {
		return nil, ErrPlayerNameRequired
	}
	return s.api.RegisterPlayer(ctx, input)
}
