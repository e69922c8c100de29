// Package bookings кэш списков бронирований на Redis.
//
// Инвалидация выполняется через версию ресурса: ключи списков включают
// номер версии, Invalidate только инкрементирует версию, и все старые
// ключи ресурса перестают находиться (их добирает TTL). Ядро дергает
// явный Invalidate(resourceID) после мутаций вместо точечного удаления
// ключей хранилища.
package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш списков бронирований, ключ — (ресурс, дата)
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log Logger
}

// New создает кэш поверх клиента Redis
func New(rdb *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) versionKey(resourceID int64) string {
	return fmt.Sprintf("bookings:ver:%d", resourceID)
}

func (c *Cache) listKey(resourceID, version int64, date time.Time) string {
	return fmt.Sprintf("bookings:%d:%d:%s", resourceID, version, date.Format(domain.DateFormat))
}

func (c *Cache) version(ctx context.Context, resourceID int64) int64 {
	v, err := c.rdb.Get(ctx, c.versionKey(resourceID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("bookings cache: failed to read version for resource=%d: %v", resourceID, err)
		}
		return 0
	}
	return v
}

// Get возвращает закэшированный список бронирований, если он есть
func (c *Cache) Get(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, bool) {
	key := c.listKey(resourceID, c.version(ctx, resourceID), date)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("bookings cache: get failed for %s: %v", key, err)
		}
		return nil, false
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		c.log.Warn("bookings cache: corrupt entry %s, dropping: %v", key, err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}

	return bookings, true
}

// Set кладет список бронирований в кэш. Ошибки записи только логируются:
// кэш не должен влиять на корректность ответа.
func (c *Cache) Set(ctx context.Context, resourceID int64, date time.Time, bookings []domain.Booking) {
	raw, err := json.Marshal(bookings)
	if err != nil {
		c.log.Warn("bookings cache: marshal failed for resource=%d: %v", resourceID, err)
		return
	}

	key := c.listKey(resourceID, c.version(ctx, resourceID), date)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("bookings cache: set failed for %s: %v", key, err)
	}
}

// Invalidate сбрасывает все списки ресурса после мутации
func (c *Cache) Invalidate(ctx context.Context, resourceID int64) {
	if err := c.rdb.Incr(ctx, c.versionKey(resourceID)).Err(); err != nil {
		c.log.Warn("bookings cache: invalidate failed for resource=%d: %v", resourceID, err)
	}
}
