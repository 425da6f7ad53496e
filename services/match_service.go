package services

import (
	"context"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/models"
)

// MatchCreator — запись сыгранного матча на бэкенде.
type MatchCreator interface {
	CreateMatch(ctx context.Context, identity backend.Identity, input backend.CreateMatchInput) (*models.Match, error)
}

// MatchService записывает результаты матчей. Счёт проверяется локально
// по тем же правилам, что и на бэкенде, чтобы не гонять заведомо
// невалидные запросы.
type MatchService struct {
	api MatchCreator
}

// NewMatchService создаёт MatchService поверх клиента бэкенда.
func NewMatchService(api MatchCreator) *MatchService {
	return &MatchService{api: api}
}

// RecordMatch валидирует счёт под тип подсчёта и отправляет матч на бэкенд.
func (s *MatchService) RecordMatch(ctx context.Context, identity backend.Identity, input backend.CreateMatchInput) (*models.Match, error) {
	if input.Player1ID == input.Player2ID {
		return nil, ErrMatchSamePlayer
	}
	switch input.ScoreType {
	case models.ScoringPoints:
		if input.Points1 == nil || input.Points2 == nil {
			return nil, ErrMatchPointsRequired
		}
	case models.ScoringSets:
		if input.Sets1 == nil || input.Sets2 == nil {
			return nil, ErrMatchSetsRequired
		}
	default:
		return nil, ErrDraftInvalidScoringType
	}
	return s.api.CreateMatch(ctx, identity, input)
}
