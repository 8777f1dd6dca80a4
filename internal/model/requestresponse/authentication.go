package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// UserSummary : краткая информация о пользователе в ответе на логин
type UserSummary struct {
	UUID     string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Username string `json:"username" example:"user1"`
	Email    string `json:"email" example:"user@example.com"`
}

// LoginResponse : ответ на успешную аутентификацию.
// Refresh токен в тело не попадает — он устанавливается httpOnly cookie.
type LoginResponse struct {
	AccessToken string      `json:"accessToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	User        UserSummary `json:"user"`
}

// RefreshTokenResponse : ответ на успешное обновление access токена
type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Message string `json:"message" example:"сессия завершена"`
}
