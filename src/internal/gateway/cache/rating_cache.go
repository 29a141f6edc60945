package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a rating is not cached.
var ErrMiss = errors.New("cache miss")

type RatingCache struct {
	Redis redis.UniversalClient
	TTL   time.Duration
}

func NewRatingCache(client redis.UniversalClient, ttl time.Duration) *RatingCache {
	return &RatingCache{Redis: client, TTL: ttl}
}

func ratingKey(productID string) string {
	return fmt.Sprintf("PRODUCT:RATING:%s", productID)
}

func (c *RatingCache) SetRating(ctx context.Context, productID string, rating float64) error {
	value := strconv.FormatFloat(rating, 'f', 1, 64)
	return c.Redis.Set(ctx, ratingKey(productID), value, c.TTL).Err()
}

func (c *RatingCache) GetRating(ctx context.Context, productID string) (float64, error) {
	value, err := c.Redis.Get(ctx, ratingKey(productID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}
