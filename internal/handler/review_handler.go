package handler

import (
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/ports"
	"booking-web-server/internal/repository"
	"booking-web-server/internal/security"
	"booking-web-server/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService}
}

// ListReviews godoc
// @Summary Список отзывов
// @Description Возвращает все отзывы вместе с username авторов. Маршрут публичный
// @Tags Reviews
// @Produce json
// @Success 200 {object} requestresponse.ListReviewsResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reviews, err := h.ReviewService.ListReviews(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListReviewsResponse{Count: len(reviews)}
	resp.Data.Reviews = reviews

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// CreateReview godoc
// @Summary Публикация отзыва
// @Description Создаёт отзыв от имени авторизованного пользователя
// @Tags Reviews
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateReviewRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.CreateReviewResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустой текст"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "пользователь не авторизован")
		return
	}

	var req requestresponse.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Text == "" {
		sendErrorResponse(w, 400, "текст отзыва обязателен")
		return
	}

	review, err := h.ReviewService.CreateReview(ctx, claims.UserUUID, req.FieldUUID, req.Text)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.CreateReviewResponse{
		Message: "отзыв опубликован",
		Review:  *review,
	}

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// DeleteReview godoc
// @Summary Удаление отзыва
// @Description Удаляет отзыв. Разрешено только автору отзыва
// @Tags Reviews
// @Produce json
// @Param review_uuid path string true "UUID отзыва"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteReviewResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Отзыв принадлежит другому пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Отзыв не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/reviews/{review_uuid} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "пользователь не авторизован")
		return
	}

	reviewUUID := chi.URLParam(r, "review_uuid")

	if err := h.ReviewService.DeleteReview(ctx, reviewUUID, claims.UserUUID); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, repository.ErrReviewNotFound):
			sendErrorResponse(w, 404, "отзыв не найден")
		case errors.Is(err, service.ErrNotAuthor):
			sendErrorResponse(w, 403, "нельзя удалить чужой отзыв")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.DeleteReviewResponse{Message: "отзыв удалён"})
}
