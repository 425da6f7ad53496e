package models

// Gender соответствует ENUM пола игрока в бэкенде.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// Player — игрок, как его отдаёт бэкенд. Со стороны админки только читается.
type Player struct {
	ID            int     `json:"id"`
	TgID          int64   `json:"tg_id"`
	Username      *string `json:"username,omitempty"`
	DisplayName   string  `json:"display_name"`
	Gender        *Gender `json:"gender,omitempty"`
	CurrentRating float64 `json:"current_rating"`
	RatingLetter  *string `json:"rating_letter,omitempty"`
}
