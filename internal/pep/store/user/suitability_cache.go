package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"pepgate/internal/pep/models"
)

var suitabilityCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pepgate_suitability_cache_lookups_total",
	Help: "Suitability cache lookups by outcome",
}, []string{"outcome"})

const suitabilityKeyPrefix = "suitability:"

// SuitabilityCache is a Redis read-through cache over a Store. Only positive
// suitability is cached: a profile, once established, stays established for
// the life of the onboarding, so a stale positive cannot wrongly admit a
// user. Cache errors degrade to the underlying store and never fail the
// pipeline on their own.
type SuitabilityCache struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSuitabilityCache(next Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *SuitabilityCache {
	return &SuitabilityCache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *SuitabilityCache) FindSuitability(ctx context.Context, uniqueID string) (bool, error) {
	key := suitabilityKeyPrefix + uniqueID
	_, err := c.client.Get(ctx, key).Result()
	if err == nil {
		suitabilityCacheHits.WithLabelValues("hit").Inc()
		return true, nil
	}
	if !errors.Is(err, redis.Nil) {
		suitabilityCacheHits.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "suitability cache read failed", "error", err)
	} else {
		suitabilityCacheHits.WithLabelValues("miss").Inc()
	}

	suitability, err := c.next.FindSuitability(ctx, uniqueID)
	if err != nil {
		return false, err
	}
	if suitability {
		if err := c.client.Set(ctx, key, "1", c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "suitability cache write failed", "error", err)
		}
	}
	return suitability, nil
}

// UpdateDeclaration passes through: declaration fields are not cached.
func (c *SuitabilityCache) UpdateDeclaration(ctx context.Context, record models.Record) error {
	return c.next.UpdateDeclaration(ctx, record)
}
