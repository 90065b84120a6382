package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// DefaultModelTTL bounds the staleness of cached registry entries
const DefaultModelTTL = 5 * time.Minute

// ModelCache caches the latest active trained model per (owner, model name)
// so hot serving lookups skip the registry query. Entries expire after the
// TTL and are invalidated on retrain, activation change, accuracy recording,
// and delete. All operations are best-effort; a missing or failing Redis
// behaves like an empty cache.
type ModelCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewModelCache creates a model cache over the given Redis client.
// A non-positive ttl falls back to DefaultModelTTL.
func NewModelCache(redis *RedisClient, ttl time.Duration) *ModelCache {
	if ttl <= 0 {
		ttl = DefaultModelTTL
	}
	return &ModelCache{
		redis: redis,
		ttl:   ttl,
	}
}

// NewModelCacheFromSettings wires the model cache per configuration.
// Returns nil when ENABLE_CACHE is off or Redis is unreachable, so
// callers can pass the result straight to SetModelCache.
func NewModelCacheFromSettings(settings *config.Settings) *ModelCache {
	if settings == nil || !settings.EnableCache {
		return nil
	}

	client := NewRedisClient(settings.RedisHost, settings.RedisPort, settings.RedisPassword)
	if client == nil {
		log.Println("⚠️ Redis connection failed. Caching disabled.")
		return nil
	}

	return NewModelCache(client, DefaultModelTTL)
}

// Get retrieves the cached latest model for the pair.
// Returns the model and true if found, nil and false otherwise.
func (c *ModelCache) Get(ctx context.Context, userID, modelName string) (*models.TrainedModel, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	var model models.TrainedModel
	if err := c.redis.Get(ctx, modelKey(userID, modelName), &model); err != nil {
		return nil, false
	}

	return &model, true
}

// Set caches a model as the latest version for its (owner, name) pair
func (c *ModelCache) Set(ctx context.Context, model *models.TrainedModel) {
	if c == nil || c.redis == nil || model == nil {
		return
	}
	_ = c.redis.Set(ctx, modelKey(model.UserID, model.ModelName), model, c.ttl)
}

// Invalidate drops the cached entry for the pair
func (c *ModelCache) Invalidate(ctx context.Context, userID, modelName string) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, modelKey(userID, modelName))
}

// Close releases the underlying Redis connection
func (c *ModelCache) Close() error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func modelKey(userID, modelName string) string {
	return fmt.Sprintf("models:latest:%s:%s", userID, modelName)
}
