package distancecache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

const (
	keyPrefix = "distance"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// CachedProvider кэширует в redis расстояния, полученные от next
// Ошибки redis логируются и не мешают обращению к next
// Ошибки next не кэшируются
type CachedProvider struct {
	next    Provider
	client  RedisClient
	ttl     time.Duration
	scope   string
	metrics *metrics.Metrics
	logger  Logger
}

// NewCachedProvider создает кэширующую обёртку
// scope разделяет ключи разных стратегий; m может быть nil
func NewCachedProvider(next Provider, client RedisClient, ttl time.Duration, scope string, m *metrics.Metrics, logger Logger) *CachedProvider {
	return &CachedProvider{
		next:    next,
		client:  client,
		ttl:     ttl,
		scope:   scope,
		metrics: m,
		logger:  logger,
	}
}

func (p *CachedProvider) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	if c, ok := p.next.(configurable); ok && !c.Configured() {
		return p.next.Distance(ctx, from, to)
	}

	key := p.key(from, to)

	cached, err := p.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		meters, parseErr := strconv.ParseFloat(cached, 64)
		if parseErr == nil {
			p.count(resultHit)
			return meters, nil
		}
		p.logger.Warn("DistanceCache: broken value for key=%s: %v", key, parseErr)
		p.count(resultError)
	case errors.Is(err, redis.Nil):
		p.count(resultMiss)
	default:
		p.logger.Warn("DistanceCache: get key=%s failed: %v", key, err)
		p.count(resultError)
	}

	meters, err := p.next.Distance(ctx, from, to)
	if err != nil {
		return 0, err
	}

	value := strconv.FormatFloat(meters, 'f', -1, 64)
	if err := p.client.Set(ctx, key, value, p.ttl).Err(); err != nil {
		p.logger.Warn("DistanceCache: set key=%s failed: %v", key, err)
	}

	return meters, nil
}

// key округляет координаты до 5 знаков (около метра)
func (p *CachedProvider) key(from, to domain.Coordinates) string {
	return fmt.Sprintf("%s:%s:%.5f,%.5f:%.5f,%.5f",
		keyPrefix, p.scope, from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

func (p *CachedProvider) count(result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.DistanceCacheTotal.WithLabelValues(result).Inc()
}
