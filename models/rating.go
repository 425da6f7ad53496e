package models

// RatingModeCode — код режима турнира, закрытое множество из семи значений.
type RatingModeCode string

const (
	ModeAmericanoClassic RatingModeCode = "americano_classic"
	ModeAmericanoTeam    RatingModeCode = "americano_team"
	ModeAmericanoMix     RatingModeCode = "americano_mix"
	ModeMexicanoClassic  RatingModeCode = "mexicano_classic"
	ModeMexicanoTeam     RatingModeCode = "mexicano_team"
	ModeMexicanoMix      RatingModeCode = "mexicano_mix"
	ModeKingOfCourt      RatingModeCode = "king_of_court"
)

// IsValid проверяет, что код входит в известное множество режимов.
func (c RatingModeCode) IsValid() bool {
	switch c {
	case ModeAmericanoClassic, ModeAmericanoTeam, ModeAmericanoMix,
		ModeMexicanoClassic, ModeMexicanoTeam, ModeMexicanoMix,
		ModeKingOfCourt:
		return true
	}
	return false
}

// RatingMode — пара (код, отображаемое имя) из GET /rating/modes.
type RatingMode struct {
	Code RatingModeCode `json:"code"`
	Name string         `json:"name"`
}

// PlayerRatingRow — строка таблицы рейтинга для выбранного режима.
// Все агрегаты считаются бэкендом, клиент их только отображает.
type PlayerRatingRow struct {
	PlayerID      int     `json:"player_id"`
	DisplayName   string  `json:"display_name"`
	Username      *string `json:"username,omitempty"`
	Gender        *Gender `json:"gender,omitempty"`
	CurrentRating float64 `json:"current_rating"`
	RatingLetter  *string `json:"rating_letter,omitempty"`

	GamesPlayed    int `json:"games_played"`
	WinsGames      int `json:"wins_games"`
	DrawsGames     int `json:"draws_games"`
	LossesGames    int `json:"losses_games"`
	WinsSets       int `json:"wins_sets"`
	LossesSets     int `json:"losses_sets"`
	PointsScored   int `json:"points_scored"`
	PointsConceded int `json:"points_conceded"`
	DeltaPoints    int `json:"delta_points"`
	DeltaSets      int `json:"delta_sets"`
}
