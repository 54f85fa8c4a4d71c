package distancecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/distance"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

var (
	from = domain.Coordinates{Latitude: 3.139003, Longitude: 101.686855}
	to   = domain.Coordinates{Latitude: 3.073838, Longitude: 101.518347}
)

type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type providerStub struct {
	meters float64
	err    error
	calls  int
}

func (p *providerStub) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	p.calls++
	return p.meters, p.err
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry("test", prometheus.NewRegistry())
}

func TestCachedProvider_MissThenHit(t *testing.T) {
	rdb := newFakeRedis()
	next := &providerStub{meters: 23456.5}
	m := newTestMetrics()
	cached := NewCachedProvider(next, rdb, time.Hour, "external", m, logger.NewNop())

	first, err := cached.Distance(context.Background(), from, to)
	require.NoError(t, err)
	second, err := cached.Distance(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 23456.5, first)
	assert.Equal(t, 23456.5, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, rdb.ttls[cached.key(from, to)])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DistanceCacheTotal.WithLabelValues(resultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DistanceCacheTotal.WithLabelValues(resultHit)))
}

func TestCachedProvider_ProviderErrorIsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	next := &providerStub{err: errors.New("denied")}
	cached := NewCachedProvider(next, rdb, time.Hour, "external", nil, logger.NewNop())

	_, err := cached.Distance(context.Background(), from, to)

	require.Error(t, err)
	assert.Empty(t, rdb.values)
}

func TestCachedProvider_RedisDownIsBypassed(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	next := &providerStub{meters: 1000}
	m := newTestMetrics()
	cached := NewCachedProvider(next, rdb, time.Hour, "external", m, logger.NewNop())

	got, err := cached.Distance(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DistanceCacheTotal.WithLabelValues(resultError)))
}

func TestCachedProvider_BrokenValue(t *testing.T) {
	rdb := newFakeRedis()
	next := &providerStub{meters: 42}
	cached := NewCachedProvider(next, rdb, time.Minute, "external", nil, logger.NewNop())
	rdb.values[cached.key(from, to)] = "not-a-number"

	got, err := cached.Distance(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
	assert.Equal(t, "42", rdb.values[cached.key(from, to)])
}

type matrixClientStub struct {
	hasKey bool
	meters float64
	calls  int
}

func (c *matrixClientStub) HasAPIKey() bool { return c.hasKey }

func (c *matrixClientStub) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	c.calls++
	return c.meters, nil
}

func TestCachedProvider_ExternalWithoutKeyIgnoresCache(t *testing.T) {
	rdb := newFakeRedis()
	client := &matrixClientStub{hasKey: false}
	m := newTestMetrics()
	cached := NewCachedProvider(distance.NewExternalProvider(client, 0), rdb, time.Hour, distance.StrategyExternal, m, logger.NewNop())

	// значение осталось от запуска, когда ключ был задан
	rdb.values[cached.key(from, to)] = "25000"

	got, err := cached.Distance(context.Background(), from, to)

	require.ErrorIs(t, err, distance.ErrDistanceUnavailable)
	assert.Zero(t, got)
	assert.Zero(t, client.calls)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DistanceCacheTotal.WithLabelValues(resultHit)))
}

func TestCachedProvider_ExternalWithKeyUsesCache(t *testing.T) {
	rdb := newFakeRedis()
	client := &matrixClientStub{hasKey: true, meters: 30000}
	cached := NewCachedProvider(distance.NewExternalProvider(client, 0), rdb, time.Hour, distance.StrategyExternal, nil, logger.NewNop())
	rdb.values[cached.key(from, to)] = "25000"

	got, err := cached.Distance(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, 25000.0, got)
	assert.Zero(t, client.calls)
}
