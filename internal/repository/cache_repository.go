package repository

import (
	"booking-web-server/config"
	"booking-web-server/internal/model"
	"booking-web-server/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const fieldsCacheKey = "fields:all"

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

// SetFields : кладёт список полей в Redis целиком
func (r *CacheRepository) SetFields(ctx context.Context, fields []model.Field) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return util.LogError("ошибка сериализации списка полей", err)
	}

	cmd := r.client.Client.Set(ctx, fieldsCacheKey, data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

// GetFields : возвращает закэшированный список полей, nil если в кэше пусто
func (r *CacheRepository) GetFields(ctx context.Context) ([]model.Field, error) {
	val, err := r.client.Client.Get(ctx, fieldsCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения списка полей из Redis", err)
	}

	var fields []model.Field
	if err := json.Unmarshal([]byte(val), &fields); err != nil {
		return nil, util.LogError("ошибка десериализации списка полей из кэша", err)
	}
	return fields, nil
}

// InvalidateFields : сбрасывает кэш после изменения доступности поля
func (r *CacheRepository) InvalidateFields(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, fieldsCacheKey).Err(); err != nil {
		return util.LogError("ошибка удаления списка полей из Redis", err)
	}
	return nil
}
