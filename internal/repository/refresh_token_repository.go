package repository

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateToken : такой refresh токен уже сохранён.
	// При уникальных токенах ситуация не должна возникать, но молча глотать её нельзя
	ErrDuplicateToken = errors.New("refresh токен уже существует")

	// ErrTokenNotFound : записи с таким токеном в БД нет
	ErrTokenNotFound = errors.New("refresh токен не найден")
)

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// SaveRefreshToken сохраняет запись о выданном refresh-токене.
// Возвращает ErrDuplicateToken, если точно такое же значение токена уже есть в БД
func (r *RefreshTokenRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (token, user_uuid, created_at) VALUES ($1, $2, $3)`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.Token,
		refreshToken.UserUUID,
		refreshToken.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateToken
		}
		return util.LogError("ошибка вставки данных в БД", err)
	}

	return nil
}

// FindByToken ищет запись по точному значению токена, без префиксных совпадений.
// Возвращает ErrTokenNotFound, если записи нет
func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `SELECT token, user_uuid, created_at FROM refresh_tokens WHERE token = $1`

	refreshToken := &model.RefreshToken{}

	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&refreshToken.Token,
		&refreshToken.UserUUID,
		&refreshToken.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, util.LogError("ошибка при выполнении запроса", err)
	}

	return refreshToken, nil
}

// DeleteByToken удаляет не более одной записи и возвращает количество удалённых строк.
// Удаление несуществующего токена ошибкой не считается — операция идемпотентна
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE token = $1`

	result, err := r.DB.ExecContext(ctx, query, token)
	if err != nil {
		return 0, util.LogError("не удалось удалить refresh токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("не удалось проверить, удалён ли токен", err)
	}

	return rowsAffected, nil
}
