package service

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/model/requestresponse"
	"booking-web-server/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrFieldUnavailable : на выбранную дату свободных слотов нет
var ErrFieldUnavailable = errors.New("поле недоступно на эту дату")

type FieldService struct {
	fieldRepository   ports.FieldRepository
	bookingRepository ports.BookingRepository
	cacheRepository   ports.CacheRepository
	s3Storage         ports.S3Storage
	urlTTL            time.Duration
}

func NewFieldService(
	fieldRepository ports.FieldRepository,
	bookingRepository ports.BookingRepository,
	cacheRepository ports.CacheRepository,
	s3Storage ports.S3Storage,
	urlTTL time.Duration,
) *FieldService {
	return &FieldService{
		fieldRepository:   fieldRepository,
		bookingRepository: bookingRepository,
		cacheRepository:   cacheRepository,
		s3Storage:         s3Storage,
		urlTTL:            urlTTL,
	}
}

// ListFields возвращает все поля. Список берётся из Redis, при промахе — из БД
// с прогревом кэша. Presigned URL картинок генерируются на каждый запрос,
// в кэш они не попадают
func (s *FieldService) ListFields(ctx context.Context) ([]requestresponse.FieldResponse, error) {
	fields, err := s.cacheRepository.GetFields(ctx)
	if err != nil {
		log.Printf("[FieldService] ошибка чтения кэша, иду в БД: %v", err)
	}

	if fields == nil {
		db, ok := ctx.Value("db").(*config.Database)
		if !ok {
			return nil, fmt.Errorf("[FieldService] database connection не найден в context")
		}

		fields, err = s.fieldRepository.ListFields(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("[FieldService] ошибка получения списка полей: %w", err)
		}

		if err := s.cacheRepository.SetFields(ctx, fields); err != nil {
			log.Printf("[FieldService] не удалось прогреть кэш: %v", err)
		}
	}

	responses := make([]requestresponse.FieldResponse, 0, len(fields))
	for i := range fields {
		imageURL := ""
		if fields[i].ImageKey != "" {
			imageURL, err = s.s3Storage.GeneratePresignedGetURL(ctx, fields[i].ImageKey, s.urlTTL)
			if err != nil {
				log.Printf("[FieldService] не удалось сгенерировать URL картинки: %v", err)
				imageURL = ""
			}
		}
		responses = append(responses, requestresponse.FieldResponseFromModel(&fields[i], imageURL))
	}

	return responses, nil
}

// BookField бронирует поле на дату. Проверка доступности и её запись —
// два отдельных шага без транзакции, конкурирующие брони на одну дату
// здесь не сериализуются
func (s *FieldService) BookField(ctx context.Context, fieldUUID, date, userUUID string) (*model.Booking, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[FieldService] database connection не найден в context")
	}

	field, err := s.fieldRepository.GetByUUID(ctx, db, fieldUUID)
	if err != nil {
		return nil, err
	}

	if slots, known := field.Availability[date]; known && slots == 0 {
		return nil, ErrFieldUnavailable
	}

	field.Availability[date] = 0
	if err := s.fieldRepository.UpdateAvailability(ctx, db, fieldUUID, field.Availability); err != nil {
		return nil, fmt.Errorf("[FieldService] ошибка обновления доступности: %w", err)
	}

	booking := &model.Booking{
		UUID:       uuid.New().String(),
		AuthorUUID: userUUID,
		FieldUUID:  fieldUUID,
		Date:       date,
		Code:       strings.ToUpper(uuid.New().String()[:8]),
	}

	if err := s.bookingRepository.Create(ctx, db, booking); err != nil {
		return nil, fmt.Errorf("[FieldService] ошибка сохранения бронирования: %w", err)
	}

	if err := s.cacheRepository.InvalidateFields(ctx); err != nil {
		log.Printf("[FieldService] не удалось сбросить кэш полей: %v", err)
	}

	return booking, nil
}
