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

// ErrFieldNotFound : поле не найдено в БД
var ErrFieldNotFound = errors.New("поле не найдено")

type FieldRepository struct {
	*config.Database
}

func NewFieldRepository(database *config.Database) *FieldRepository {
	return &FieldRepository{database}
}

// ListFields : возвращает все поля с их доступностью
func (r *FieldRepository) ListFields(ctx context.Context, exec sqlx.ExtContext) ([]model.Field, error) {
	query := `SELECT uuid, name, image_key, availability, created_at FROM fields ORDER BY created_at ASC`

	var fields []model.Field
	err := sqlx.SelectContext(ctx, exec, &fields, query)
	if err != nil {
		return nil, util.LogError("[FieldRepo] не удалось получить список полей", err)
	}

	return fields, nil
}

// GetByUUID : ищет поле по UUID
func (r *FieldRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fieldUUID string) (*model.Field, error) {
	query := `SELECT uuid, name, image_key, availability, created_at FROM fields WHERE uuid = $1`

	var field model.Field
	err := sqlx.GetContext(ctx, exec, &field, query, fieldUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFieldNotFound
		}
		return nil, util.LogError("[FieldRepo] не удалось найти поле", err)
	}

	return &field, nil
}

// UpdateAvailability : перезаписывает карту доступности поля.
// Чтение и запись доступности — два отдельных шага (read-modify-write без транзакции),
// как и в исходной версии сервиса
func (r *FieldRepository) UpdateAvailability(ctx context.Context, exec sqlx.ExtContext, fieldUUID string, availability model.Availability) error {
	query := `UPDATE fields SET availability = $2 WHERE uuid = $1`

	_, err := exec.ExecContext(ctx, query, fieldUUID, availability)
	if err != nil {
		return util.LogError("[FieldRepo] не удалось обновить доступность поля", err)
	}

	return nil
}
