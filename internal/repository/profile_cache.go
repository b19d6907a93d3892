package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/swiftride/backend/internal/entity"
)

const (
	driverProfileKeyPrefix = "driver_profile:"
	driverProfileTTL       = 10 * time.Minute
)

// ProfileCache keeps recently read driver profiles in Redis so the hot
// GET /driver/me path does not hit Mongo on every request. Entries are
// invalidated on every profile mutation.
type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

func (c *ProfileCache) profileKey(userID string) string {
	return driverProfileKeyPrefix + userID
}

// Get returns the cached profile, or (nil, nil) on a cache miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*entity.DriverProfile, error) {
	val, err := c.client.Get(ctx, c.profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get driver profile for user %s from redis: %w", userID, err)
	}

	var profile entity.DriverProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached driver profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (c *ProfileCache) Set(ctx context.Context, userID string, profile *entity.DriverProfile) error {
	if profile == nil {
		return errors.New("cannot cache nil driver profile")
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal driver profile for user %s: %w", userID, err)
	}
	if err := c.client.Set(ctx, c.profileKey(userID), data, driverProfileTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache driver profile for user %s: %w", userID, err)
	}
	return nil
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.profileKey(userID)).Err()
}
