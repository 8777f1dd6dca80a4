package model

import "time"

// RefreshToken : запись об активной сессии.
// Ключом служит само значение refresh токена: пока запись существует,
// сессия может получать новые access токены. Удаление записи навсегда
// завершает сессию, даже если подпись и срок токена ещё валидны.
type RefreshToken struct {
	Token     string    `db:"token"`
	UserUUID  string    `db:"user_uuid"`
	CreatedAt time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (уходит клиенту только в httpOnly cookie)
	RefreshToken string `json:"-"`
}
