package repository_test

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/repository"
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*repository.RefreshTokenRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := repository.NewRefreshTokenRepository(&config.Database{DB: sqlxDB})

	return repo, mock
}

func TestSaveRefreshToken_Success(t *testing.T) {
	repo, mock := newTestRepository(t)

	record := &model.RefreshToken{
		Token:     "refresh-token-value",
		UserUUID:  "u1",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens (token, user_uuid, created_at) VALUES ($1, $2, $3)`)).
		WithArgs(record.Token, record.UserUUID, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveRefreshToken(context.Background(), record)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Нарушение уникальности первичного ключа транслируется в ErrDuplicateToken
func TestSaveRefreshToken_Duplicate(t *testing.T) {
	repo, mock := newTestRepository(t)

	record := &model.RefreshToken{
		Token:     "refresh-token-value",
		UserUUID:  "u1",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens`)).
		WithArgs(record.Token, record.UserUUID, record.CreatedAt).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.SaveRefreshToken(context.Background(), record)

	assert.ErrorIs(t, err, repository.ErrDuplicateToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock := newTestRepository(t)

	createdAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"token", "user_uuid", "created_at"}).
		AddRow("refresh-token-value", "u1", createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_uuid, created_at FROM refresh_tokens WHERE token = $1`)).
		WithArgs("refresh-token-value").
		WillReturnRows(rows)

	record, err := repo.FindByToken(context.Background(), "refresh-token-value")

	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", record.Token)
	assert.Equal(t, "u1", record.UserUUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_uuid, created_at FROM refresh_tokens WHERE token = $1`)).
		WithArgs("неизвестный-токен").
		WillReturnError(sql.ErrNoRows)

	record, err := repo.FindByToken(context.Background(), "неизвестный-токен")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByToken_Deleted(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE token = $1`)).
		WithArgs("refresh-token-value").
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.DeleteByToken(context.Background(), "refresh-token-value")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Повторное удаление того же токена: ноль строк, но не ошибка
func TestDeleteByToken_NothingToDelete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE token = $1`)).
		WithArgs("refresh-token-value").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.DeleteByToken(context.Background(), "refresh-token-value")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
