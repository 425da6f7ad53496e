package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ошибки выбора участников
	ErrSelectionFull     = errors.New("participant limit reached")
	ErrReorderOutOfRange = errors.New("reorder indexes are out of range")

	// Ошибки валидации черновика турнира
	ErrDraftNameRequired        = errors.New("tournament name is required")
	ErrDraftModeRequired        = errors.New("tournament mode is required")
	ErrDraftInvalidMode         = errors.New("unknown tournament mode")
	ErrDraftInvalidScoringType  = errors.New("unknown scoring type")
	ErrDraftPointsLimitRequired = errors.New("points limit must be a positive integer")
	ErrDraftSetsLimitRequired   = errors.New("sets limit must be a positive integer")
	ErrDraftNoParticipants      = errors.New("at least one participant is required")

	// Повторная отправка, пока предыдущая ещё в полёте
	ErrSubmitInFlight = errors.New("tournament submission is already in progress")

	// Ошибки рейтинга
	ErrUnknownRatingMode = errors.New("unknown rating mode")

	// Ошибки регистрации игроков
	ErrPlayerTgIDRequired = errors.New("tg_id must be a positive integer")
	ErrPlayerNameRequired = errors.New("display_name is required")

	// Ошибки матчей
	ErrMatchPointsRequired = errors.New("points1 and points2 are required for points scoring")
	ErrMatchSetsRequired   = errors.New("sets1 and sets2 are required for sets scoring")
	ErrMatchSamePlayer     = errors.New("match players must be different")
)
