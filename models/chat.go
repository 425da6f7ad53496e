package models

// Chat — Telegram-чат, в котором оператор имеет роль админа или участника.
type Chat struct {
	ID       int     `json:"id"`
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
	Role     string  `json:"role"`
}
