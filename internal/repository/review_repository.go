package repository

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrReviewNotFound : отзыв не найден в БД
var ErrReviewNotFound = errors.New("отзыв не найден")

type ReviewRepository struct {
	*config.Database
}

func NewReviewRepository(database *config.Database) *ReviewRepository {
	return &ReviewRepository{database}
}

// Create : сохраняет новый отзыв
func (r *ReviewRepository) Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	query := `
		INSERT INTO reviews (uuid, author_uuid, field_uuid, text)
		VALUES ($1, $2, $3, $4)
	`
	_, err := exec.ExecContext(ctx, query,
		review.UUID,
		review.AuthorUUID,
		review.FieldUUID,
		review.Text,
	)

	if err != nil {
		return util.LogError("[ReviewRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByUUID : ищет отзыв по UUID вместе с username автора
func (r *ReviewRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) (*model.Review, error) {
	query := `
		SELECT r.uuid, r.author_uuid, r.field_uuid, r.text, r.created_at, u.username AS author_username
		FROM reviews AS r
		JOIN users AS u ON u.uuid = r.author_uuid
		WHERE r.uuid = $1
	`

	var review model.Review
	err := sqlx.GetContext(ctx, exec, &review, query, reviewUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, util.LogError("[ReviewRepo] не удалось найти отзыв", err)
	}

	return &review, nil
}

// ListReviews : возвращает все отзывы, каждый с username автора
func (r *ReviewRepository) ListReviews(ctx context.Context, exec sqlx.ExtContext) ([]model.Review, error) {
	query := `
		SELECT r.uuid, r.author_uuid, r.field_uuid, r.text, r.created_at, u.username AS author_username
		FROM reviews AS r
		JOIN users AS u ON u.uuid = r.author_uuid
		ORDER BY r.created_at DESC
	`

	var reviews []model.Review
	err := sqlx.SelectContext(ctx, exec, &reviews, query)
	if err != nil {
		return nil, util.LogError("[ReviewRepo] не удалось получить список отзывов", err)
	}

	return reviews, nil
}

// Delete : удаляет отзыв по UUID
func (r *ReviewRepository) Delete(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) error {
	query := `DELETE FROM reviews WHERE uuid = $1`

	_, err := exec.ExecContext(ctx, query, reviewUUID)
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось удалить отзыв", err)
	}

	return nil
}
