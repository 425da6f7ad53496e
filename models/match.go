package models

import "time"

// Match — сыгранный матч турнира, как его принимает и возвращает бэкенд.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	RoundNumber  *int        `json:"round_number,omitempty"`
	CourtNumber  *int        `json:"court_number,omitempty"`
	Player1ID    int         `json:"player1_id"`
	Player2ID    int         `json:"player2_id"`
	ScoreType    ScoringType `json:"score_type"`
	Points1      *int        `json:"points1,omitempty"`
	Points2      *int        `json:"points2,omitempty"`
	Sets1        *int        `json:"sets1,omitempty"`
	Sets2        *int        `json:"sets2,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
