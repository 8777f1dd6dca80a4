package handler

import (
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"booking-web-server/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type FieldHandler struct {
	ports.FieldService
}

func NewFieldHandler(fieldService ports.FieldService) *FieldHandler {
	return &FieldHandler{fieldService}
}

// ListFields godoc
// @Summary Список полей
// @Description Возвращает все поля с картой доступности и ссылками на картинки.
// Маршрут публичный
// @Tags Fields
// @Produce json
// @Success 200 {object} requestresponse.ListFieldsResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/fields [get]
func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	fields, err := h.FieldService.ListFields(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListFieldsResponse{Count: len(fields)}
	resp.Data.Fields = fields

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// CreateBooking godoc
// @Summary Бронирование поля
// @Description Бронирует поле на дату, если она свободна, и возвращает код подтверждения
// @Tags Fields
// @Accept json
// @Produce json
// @Param field_uuid path string true "UUID поля"
// @Param body body requestresponse.CreateBookingRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CreateBookingResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустая дата"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Поле не найдено или недоступно"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/fields/{field_uuid}/bookings [post]
func (h *FieldHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "пользователь не авторизован")
		return
	}

	fieldUUID := chi.URLParam(r, "field_uuid")

	var req requestresponse.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Date == "" {
		sendErrorResponse(w, 400, "дата бронирования обязательна")
		return
	}

	booking, err := h.FieldService.BookField(ctx, fieldUUID, req.Date, claims.UserUUID)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, repository.ErrFieldNotFound):
			sendErrorResponse(w, 404, "поле не найдено")
		case errors.Is(err, service.ErrFieldUnavailable):
			sendErrorResponse(w, 404, "поле недоступно на эту дату")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.CreateBookingResponse{
		Message: fmt.Sprintf("поле забронировано на %s", booking.Date),
		Code:    booking.Code,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
