package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yukikurage/project-dashboard-api/internal/services"
)

const insightTTL = 60 * time.Second

// InsightCache is an optional read-through cache for insight reports. A nil
// *InsightCache is valid and disables caching. Redis failures are logged and
// treated as misses; the caller always falls back to a fresh computation.
type InsightCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewInsightCache creates a cache backed by the given redis address.
func NewInsightCache(addr string, logger *zap.Logger) *InsightCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &InsightCache{client: client, logger: logger}
}

// Get returns the cached report for a project, or ok=false on a miss.
func (c *InsightCache) Get(ctx context.Context, projectID string) (services.InsightsReport, bool) {
	var report services.InsightsReport
	if c == nil {
		return report, false
	}

	payload, err := c.client.Get(ctx, key(projectID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("insight cache read failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return report, false
	}

	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Debug("insight cache payload invalid", zap.String("project_id", projectID), zap.Error(err))
		return report, false
	}

	return report, true
}

// Set stores a report with a short TTL. Failures are logged and ignored.
func (c *InsightCache) Set(ctx context.Context, projectID string, report services.InsightsReport) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Debug("insight cache encode failed", zap.String("project_id", projectID), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key(projectID), payload, insightTTL).Err(); err != nil {
		c.logger.Debug("insight cache write failed", zap.String("project_id", projectID), zap.Error(err))
	}
}

// Invalidate drops the cached report for a project after a task mutation.
func (c *InsightCache) Invalidate(ctx context.Context, projectID string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, key(projectID)).Err(); err != nil {
		c.logger.Debug("insight cache invalidation failed", zap.String("project_id", projectID), zap.Error(err))
	}
}

func key(projectID string) string {
	return "insights:" + projectID
}
