package schedulecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
)

const redisKeyPrefix = "schedule:master:"

// RedisCache кэш расписаний в Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisCache создает кэш поверх клиента Redis. ttl <= 0 хранит записи без срока жизни.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, now: time.Now}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

// Get получает последний сохранённый результат по ключу
func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: GET %s: %v", ErrRedis, key, err)
	}
	return decodeEntry(data)
}

// Put перезаписывает результат по ключу
func (c *RedisCache) Put(ctx context.Context, key string, records []domain.BookingRecord) error {
	data, err := encodeEntry(Entry{Records: records, UpdatedAt: c.now()})
	if err != nil {
		return err
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %v", ErrRedis, key, err)
	}
	return nil
}
