package ports

import (
	"booking-web-server/internal/model"
	"booking-web-server/internal/model/requestresponse"
	"context"
	"github.com/jmoiron/sqlx"
)

// FieldRepository : SQL слой для полей
type FieldRepository interface {
	ListFields(ctx context.Context, exec sqlx.ExtContext) ([]model.Field, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, fieldUUID string) (*model.Field, error)
	UpdateAvailability(ctx context.Context, exec sqlx.ExtContext, fieldUUID string, availability model.Availability) error
}

// BookingRepository : SQL слой для бронирований
type BookingRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, booking *model.Booking) error
}

type FieldService interface {
	ListFields(ctx context.Context) ([]requestresponse.FieldResponse, error)
	BookField(ctx context.Context, fieldUUID, date, userUUID string) (*model.Booking, error)
}
