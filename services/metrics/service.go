package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	businessRepo "barberhub/database/repository/business"
	"barberhub/models"
	"barberhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SnapshotCacheKey holds the most recent platform-wide stats snapshot,
// written by the background refresh task for the admin console.
const SnapshotCacheKey = "metrics:platform"

// SnapshotTTL bounds how stale a cached snapshot may get before the admin
// console falls back to a live recompute.
const SnapshotTTL = 30 * time.Minute

// MetricsService computes and caches dashboard stats.
type MetricsService interface {
	// DashboardStats recomputes stats from the latest business snapshot.
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	// RefreshSnapshot recomputes stats and writes them to the cache.
	RefreshSnapshot(ctx context.Context) error
	// CachedSnapshot returns the cached stats, or a live recompute when the
	// cache is empty.
	CachedSnapshot(ctx context.Context) (*models.DashboardStats, error)
}

// DefaultMetricsService implements MetricsService over the business
// repository and the Redis cache.
type DefaultMetricsService struct {
	Repo  businessRepo.BusinessRepository
	Cache *redis.Client
}

// DashboardStats fetches the current business snapshot and aggregates it.
func (s *DefaultMetricsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	businesses, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load businesses for metrics: %w", err)
	}
	stats := Aggregate(businesses)
	return &stats, nil
}

// RefreshSnapshot recomputes platform stats and caches the result.
func (s *DefaultMetricsService) RefreshSnapshot(ctx context.Context) error {
	logger := utils.GetLogger()
	stats, err := s.DashboardStats(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats snapshot: %w", err)
	}
	if err := s.Cache.Set(ctx, SnapshotCacheKey, data, SnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache stats snapshot: %w", err)
	}
	logger.Debug("Refreshed metrics snapshot",
		zap.Int("total", stats.TotalBusinesses), zap.Int("active", stats.ActiveBusinesses))
	return nil
}

// CachedSnapshot returns the cached snapshot when present, falling back to
// a live recompute on a cache miss.
func (s *DefaultMetricsService) CachedSnapshot(ctx context.Context) (*models.DashboardStats, error) {
	data, err := s.Cache.Get(ctx, SnapshotCacheKey).Result()
	if err == redis.Nil {
		return s.DashboardStats(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}
	var stats models.DashboardStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats snapshot: %w", err)
	}
	return &stats, nil
}
