// Package rediscache implements the exchange rate cache on Redis.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// KeyPrefix is the prefix for cached exchange rates, followed by the close date.
const KeyPrefix = "close_rate:"

// GenerationKeyPrefix prefixes the per-date invalidation counter.
const GenerationKeyPrefix = "close_rate_gen:"

// generationTTL bounds how long an invalidation counter outlives its last bump.
const generationTTL = 24 * time.Hour

// NewClient parses a redis:// URL and checks the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

var errStaleGeneration = errors.New("rate generation changed")

// RateCache stores exchange rates as decimal strings with a fixed TTL.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache creates a RateCache.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

var _ portsrepo.ExchangeRateCache = (*RateCache)(nil)

// Key returns the cache key for date.
func Key(date time.Time) string {
	return KeyPrefix + date.Format(domain.DateLayout)
}

// GenerationKey returns the invalidation counter key for date.
func GenerationKey(date time.Time) string {
	return GenerationKeyPrefix + date.Format(domain.DateLayout)
}

// GetExchangeRate returns the cached rate for date. A miss is not an error.
func (c *RateCache) GetExchangeRate(ctx context.Context, date time.Time) (portsrepo.CachedRate, error) {
	vals, err := c.client.MGet(ctx, Key(date), GenerationKey(date)).Result()
	if err != nil {
		return portsrepo.CachedRate{}, fmt.Errorf("failed to get cached rate: %w", err)
	}

	var result portsrepo.CachedRate
	if gen, ok := vals[1].(string); ok {
		result.Generation, err = strconv.ParseInt(gen, 10, 64)
		if err != nil {
			return portsrepo.CachedRate{}, fmt.Errorf("corrupt rate generation %q: %w", gen, err)
		}
	}

	val, ok := vals[0].(string)
	if !ok {
		return result, nil
	}
	result.Rate, err = decimal.NewFromString(val)
	if err != nil {
		return portsrepo.CachedRate{}, fmt.Errorf("corrupt cached rate %q: %w", val, err)
	}
	result.Hit = true
	return result, nil
}

// SetExchangeRate writes rate only while the date's generation still equals
// generation. A write that lost to an invalidation is dropped silently.
func (c *RateCache) SetExchangeRate(ctx context.Context, date time.Time, rate decimal.Decimal, generation int64) error {
	genKey := GenerationKey(date)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(date), rate.String(), c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cache rate: %w", err)
	}
	return nil
}

// InvalidateExchangeRate bumps the date's generation and drops the cached value.
func (c *RateCache) InvalidateExchangeRate(ctx context.Context, date time.Time) error {
	genKey := GenerationKey(date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, Key(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate cached rate: %w", err)
	}
	return nil
}
