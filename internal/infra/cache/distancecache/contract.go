package distancecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Provider стратегия расчета расстояния, результаты которой кэшируются
type Provider interface {
	Distance(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

// configurable стратегия, которая может быть не настроена (например, нет API ключа)
// Ненастроенная стратегия обслуживается без кэша
type configurable interface {
	Configured() bool
}

// RedisClient подмножество методов *redis.Client, нужное кэшу
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
