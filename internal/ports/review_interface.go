package ports

import (
	"booking-web-server/internal/model"
	"context"
	"github.com/jmoiron/sqlx"
)

// ReviewRepository : SQL слой для отзывов
type ReviewRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) (*model.Review, error)
	ListReviews(ctx context.Context, exec sqlx.ExtContext) ([]model.Review, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) error
}

type ReviewService interface {
	CreateReview(ctx context.Context, authorUUID, fieldUUID, text string) (*model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	DeleteReview(ctx context.Context, reviewUUID, userUUID string) error
}
