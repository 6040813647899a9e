package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	CacheKeyPrefix  = "storefront:v:"
	CacheVersionKey = "storefront:version"
)

// CacheManager caches read responses in Redis. Keys embed a version number and every catalog
// mutation bumps it, so stale entries are never read again and simply expire.
// A CacheManager without a client is valid and never hits.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		redis: client,
		ttl:   DefaultCacheTTL,
	}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// Get decodes the cached value for key into dest and reports whether it was found.
// The returned version is the one the lookup ran against; a miss should be filled with
// SetAsync under that same version so an Invalidate in between leaves the fill unreachable.
func (cm *CacheManager) Get(ctx context.Context, key string, dest interface{}) (int64, bool) {
	if !cm.enabled() {
		return 0, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		return 0, false
	}

	cached, err := cm.redis.Get(ctx, cm.versionedKey(version, key)).Bytes()
	if err != nil {
		return version, false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		zap.L().Warn("Failed to unmarshal cached response", zap.String("key", key), zap.Error(err))
		return version, false
	}
	return version, true
}

// SetAsync caches value under key at the given version without blocking the request.
// A zero version means the lookup never reached Redis and nothing is stored.
func (cm *CacheManager) SetAsync(version int64, key string, value interface{}) {
	if !cm.enabled() || version <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Failed to marshal response for cache", zap.String("key", key), zap.Error(err))
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.redis.Set(bgCtx, cm.versionedKey(version, key), payload, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Invalidate drops every cached response by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if !cm.enabled() {
		return
	}
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		zap.L().Error("Failed to invalidate cache", zap.Error(err))
		return
	}
	zap.L().Debug("Cache invalidated", zap.Int64("new_version", newVersion))
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent Incr is never overwritten
		if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CacheVersionKey).Int64()
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (cm *CacheManager) versionedKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", CacheKeyPrefix, version, key)
}
