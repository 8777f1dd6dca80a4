package handler

import (
	"booking-web-server/config"
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/security"
	"booking-web-server/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

// refreshCookieName : имя cookie, в которой клиенту уходит refresh токен
const refreshCookieName = "jwt"

type AuthenticationHandler struct {
	ports.AuthenticationService
	refreshTokenTTL time.Duration
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtConfig *config.JWTConfig,
) (*AuthenticationHandler, error) {
	ttl, err := time.ParseDuration(jwtConfig.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthenticationHandler{
		authenticationService,
		ttl,
	}, nil
}

func sendErrorResponse(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{Code: code, Text: text},
	})
}

// setRefreshCookie кладёт refresh токен в httpOnly cookie.
// Время жизни cookie совпадает с TTL самого токена
func (h *AuthenticationHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет email и пароль, выдаёт access токен в теле ответа
// и refresh токен в httpOnly cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, user, err := h.AuthenticationService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrInvalidCredentials) {
			sendErrorResponse(w, 401, "неверный email или пароль")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	resp := requestresponse.LoginResponse{
		AccessToken: tokens.AccessToken,
		User: requestresponse.UserSummary{
			UUID:     user.UUID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// RefreshToken godoc
// @Summary Обновление access токена
// @Description Выдаёт новый access токен по refresh токену из cookie.
// Refresh токен при этом не меняется
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.RefreshTokenResponse "Новый access токен"
// @Failure 401 {object} requestresponse.ErrorResponse "Refresh токен отсутствует"
// @Failure 403 {object} requestresponse.ErrorResponse "Refresh токен невалиден или сессия завершена"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		sendErrorResponse(w, 401, "refresh токен отсутствует")
		return
	}

	accessToken, err := h.AuthenticationService.Refresh(ctx, cookie.Value)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrForbidden) {
			sendErrorResponse(w, 403, "refresh токен невалиден или сессия завершена")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.RefreshTokenResponse{AccessToken: accessToken}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Удаляет запись о refresh токене и очищает cookie.
// Успешен независимо от того, существовала ли запись
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.LogoutResponse
// @Success 204 "Cookie не было — завершать нечего"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.AuthenticationService.Logout(ctx, cookie.Value); err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	clearRefreshCookie(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.LogoutResponse{Message: "сессия завершена"})
}

// GetCurrentUsersUUID godoc
// @Summary Получение UUID текущего пользователя
// @Description Возвращает UUID пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUsersUUID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	resp := requestresponse.CurrentUserResponse{UserUUID: claims.UserUUID}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
