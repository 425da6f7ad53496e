package models

import (
	"strings"
	"time"
)

// ScoringType — тип подсчёта очков в турнире.
type ScoringType string

const (
	ScoringPoints ScoringType = "points"
	ScoringSets   ScoringType = "sets"
)

// IsValid проверяет, что тип подсчёта известен.
func (s ScoringType) IsValid() bool {
	return s == ScoringPoints || s == ScoringSets
}

// Tournament — турнир, каким его возвращает бэкенд после создания.
// Клиент его никогда не изменяет.
type Tournament struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Mode        RatingModeCode `json:"mode"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	ScoringType ScoringType    `json:"scoring_type"`
	PointsLimit *int           `json:"points_limit"`
	SetsLimit   *int           `json:"sets_limit"`
	// ID игроков в порядке, который вернул бэкенд.
	Participants []int `json:"participants"`
}

// TournamentDraft — черновик турнира на стороне админки.
// Живёт только в памяти сессии оператора, до отправки на бэкенд.
type TournamentDraft struct {
	Name        string         `json:"name"`
	Mode        RatingModeCode `json:"mode"`
	ScoringType ScoringType    `json:"scoring_type"`
	PointsLimit int            `json:"points_limit"`
	SetsLimit   int            `json:"sets_limit"`
	// Выбранные участники в порядке выбора. Порядок значим:
	// он уходит на бэкенд как есть.
	Participants []Player `json:"participants"`
}

// NewTournamentDraft возвращает пустой черновик с типом подсчёта по умолчанию.
func NewTournamentDraft() *TournamentDraft {
	return &TournamentDraft{ScoringType: ScoringPoints}
}

// TrimmedName — имя черновика без окружающих пробелов.
func (d *TournamentDraft) TrimmedName() string {
	return strings.TrimSpace(d.Name)
}

// ParticipantIDs возвращает ID выбранных участников в порядке выбора.
func (d *TournamentDraft) ParticipantIDs() []int {
	ids := make([]int, len(d.Participants))
	for i, p := range d.Participants {
		ids[i] = p.ID
	}
	return ids
}

// ResetAfterCreate сбрасывает черновик после успешного создания турнира:
// имя и участники очищаются, режим и тип подсчёта остаются,
// чтобы оператору не пришлось вводить их заново.
func (d *TournamentDraft) ResetAfterCreate() {
	d.Name = ""
	d.Participants = nil
}
