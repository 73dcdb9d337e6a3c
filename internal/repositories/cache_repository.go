package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

// Ключи кеша.
const (
	CategoriesCacheKey = "categories:all"
	// DashboardGenerationKey - счётчик поколений кеша дашбордов.
	DashboardGenerationKey = "dashboard:generation"
)

// Ключи дашбордов включают поколение: после InvalidateDashboards
// старые записи больше не читаются и истекают по TTL.
func DashboardSummaryCacheKey(generation int64) string {
	return fmt.Sprintf("dashboard:summary:g%d", generation)
}

func DashboardStatsCacheKey(employeeID uint64, generation int64) string {
	return fmt.Sprintf("dashboard:stats:%d:g%d", employeeID, generation)
}

// DashboardGeneration - текущее поколение, 0 если счётчика ещё нет.
func DashboardGeneration(ctx context.Context, cache CacheRepositoryInterface) (int64, error) {
	raw, err := cache.Get(ctx, DashboardGenerationKey)
	if errors.Is(err, ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	generation, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное поколение кеша %q: %w", raw, err)
	}
	return generation, nil
}

// InvalidateDashboards переводит кеш дашбордов на новое поколение.
// Значение, посчитанное до изменения и записанное после, попадает
// под старый ключ и уже не читается.
func InvalidateDashboards(ctx context.Context, cache CacheRepositoryInterface) error {
	_, err := cache.Incr(ctx, DashboardGenerationKey)
	return err
}

func LoginAttemptsCacheKey(userID uint64) string {
	return fmt.Sprintf("login_attempts:%d", userID)
}

func LockoutCacheKey(userID uint64) string {
	return fmt.Sprintf("lockout:%d", userID)
}
