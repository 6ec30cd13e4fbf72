package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"clinicdesk/config"
)

// CacheClient is the generic cache client, used for short-TTL availability
// snapshots.
var CacheClient *redis.Client

// AvailabilityCacheTTL bounds how stale a cached availability snapshot can
// get; every grid mutation also invalidates the day's key explicitly.
const AvailabilityCacheTTL = 30 * time.Second

// InitCache initializes the Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// AvailabilityCacheKey builds the cache key for one provider/day snapshot.
func AvailabilityCacheKey(providerID, date string) string {
	return fmt.Sprintf("availability:%s:%s", providerID, date)
}

// InvalidateAvailability drops the cached snapshots for the given days.
// Cache errors are not fatal; the snapshot TTL bounds staleness anyway.
func InvalidateAvailability(ctx context.Context, client *redis.Client, providerID string, dates ...string) {
	if client == nil || len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, AvailabilityCacheKey(providerID, d))
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to invalidate availability cache for %s: %v", providerID, err)
	}
}

// InvalidateAllAvailability drops every cached availability snapshot. Used by
// clinic-wide mutations whose reach spans all providers.
func InvalidateAllAvailability(ctx context.Context, client *redis.Client) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "availability:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		GetLogger().Sugar().Warnf("availability cache scan failed: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to flush availability cache: %v", err)
	}
}
