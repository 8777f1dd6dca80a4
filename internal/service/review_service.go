package service

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotAuthor : отзыв существует, но принадлежит другому пользователю
var ErrNotAuthor = errors.New("нельзя удалить чужой отзыв")

type ReviewService struct {
	reviewRepository ports.ReviewRepository
}

func NewReviewService(reviewRepository ports.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepository: reviewRepository,
	}
}

// CreateReview сохраняет отзыв и возвращает его уже с username автора
func (s *ReviewService) CreateReview(ctx context.Context, authorUUID, fieldUUID, text string) (*model.Review, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ReviewService] database connection не найден в context")
	}

	review := &model.Review{
		UUID:       uuid.New().String(),
		AuthorUUID: authorUUID,
		FieldUUID:  fieldUUID,
		Text:       text,
	}

	if err := s.reviewRepository.Create(ctx, db, review); err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка создания отзыва: %w", err)
	}

	created, err := s.reviewRepository.GetByUUID(ctx, db, review.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка чтения созданного отзыва: %w", err)
	}

	return created, nil
}

func (s *ReviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ReviewService] database connection не найден в context")
	}

	reviews, err := s.reviewRepository.ListReviews(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("[ReviewService] ошибка получения отзывов: %w", err)
	}

	return reviews, nil
}

// DeleteReview удаляет отзыв, если запрашивающий является его автором.
// Это единственное правило авторизации в системе
func (s *ReviewService) DeleteReview(ctx context.Context, reviewUUID, userUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ReviewService] database connection не найден в context")
	}

	review, err := s.reviewRepository.GetByUUID(ctx, db, reviewUUID)
	if err != nil {
		return err
	}

	if review.AuthorUUID != userUUID {
		return ErrNotAuthor
	}

	if err := s.reviewRepository.Delete(ctx, db, reviewUUID); err != nil {
		return fmt.Errorf("[ReviewService] ошибка удаления отзыва: %w", err)
	}

	return nil
}
