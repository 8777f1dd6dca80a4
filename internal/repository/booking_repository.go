package repository

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/util"
	"context"

	"github.com/jmoiron/sqlx"
)

type BookingRepository struct {
	*config.Database
}

func NewBookingRepository(database *config.Database) *BookingRepository {
	return &BookingRepository{database}
}

// Create : сохраняет новое бронирование
func (r *BookingRepository) Create(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (uuid, author_uuid, field_uuid, date, code)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(ctx, query,
		booking.UUID,
		booking.AuthorUUID,
		booking.FieldUUID,
		booking.Date,
		booking.Code,
	)

	if err != nil {
		return util.LogError("[BookingRepo] ошибка вставки данных в БД", err)
	}
	return nil
}
