package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synthetica-health/platform/pkg/common/logger"
	"github.com/synthetica-health/platform/pkg/common/models"
)

// SummaryCache keeps computed dataset statistics hot in Redis so repeated
// stats requests do not re-read and re-summarize the CSV.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(id string) string {
	return fmt.Sprintf("dataset:summary:%s", id)
}

// Put stores stats for a dataset. Cache failures are logged, not
// surfaced; the cache is an optimization.
func (c *SummaryCache) Put(ctx context.Context, id string, stats models.DatasetStats) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to marshal dataset summary")
		return
	}
	if err := c.client.Set(ctx, summaryKey(id), data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).WithField("dataset_id", id).Warn("failed to cache dataset summary")
	}
}

// Get fetches cached stats; the second return reports a hit.
func (c *SummaryCache) Get(ctx context.Context, id string) (models.DatasetStats, bool) {
	if c == nil || c.client == nil {
		return models.DatasetStats{}, false
	}
	data, err := c.client.Get(ctx, summaryKey(id)).Bytes()
	if err != nil {
		return models.DatasetStats{}, false
	}
	var stats models.DatasetStats
	if err := json.Unmarshal(data, &stats); err != nil {
		logger.Log.WithError(err).WithField("dataset_id", id).Warn("corrupt cached summary, ignoring")
		return models.DatasetStats{}, false
	}
	return stats, true
}

// Invalidate removes a dataset's cached summary.
func (c *SummaryCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, summaryKey(id)).Err(); err != nil {
		logger.Log.WithError(err).WithField("dataset_id", id).Warn("failed to invalidate summary cache")
	}
}
