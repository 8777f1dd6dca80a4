package handler

import (
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя. Username и email должны быть уникальны
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RegisterResponse "Успешная регистрация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON, пустые поля или занятые username/email"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "username, email и password обязательны")
		return
	}

	if err := h.UserService.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			sendErrorResponse(w, 400, "username уже используется")
		case errors.Is(err, service.ErrEmailTaken):
			sendErrorResponse(w, 400, "email уже используется")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.RegisterResponse{
		Message: "регистрация выполнена успешно",
	})
}
