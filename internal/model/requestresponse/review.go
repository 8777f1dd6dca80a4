package requestresponse

import "booking-web-server/internal/model"

// CreateReviewRequest : тело запроса публикации отзыва
type CreateReviewRequest struct {
	Text      string `json:"text" example:"Отличное покрытие, раздевалки чистые"`
	FieldUUID string `json:"field_uuid" example:"qwdj1q4o34u34ih759ou1"`
}

// CreateReviewResponse : ответ при создании отзыва
type CreateReviewResponse struct {
	Message string       `json:"message" example:"отзыв опубликован"`
	Review  model.Review `json:"review"`
}

// ListReviewsResponse : ответ API со списком отзывов
type ListReviewsResponse struct {
	Data struct {
		Reviews []model.Review `json:"reviews"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}

// DeleteReviewResponse : ответ на удаление отзыва
type DeleteReviewResponse struct {
	Message string `json:"message" example:"отзыв удалён"`
}
