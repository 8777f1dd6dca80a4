package ports

import (
	"booking-web-server/internal/model"
	"context"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetFields(ctx context.Context, fields []model.Field) error
	GetFields(ctx context.Context) ([]model.Field, error)
	InvalidateFields(ctx context.Context) error
}
