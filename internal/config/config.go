package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Storage        StorageConfig        `toml:"storage"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	DistanceMatrix DistanceMatrixConfig `toml:"distance_matrix"`
	Cache          CacheConfig          `toml:"cache"`
	Recommendation RecommendationConfig `toml:"recommendation"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища
// Seed используется только драйвером memory для начального наполнения справочников
type StorageConfig struct {
	Driver string     `toml:"driver"`
	Seed   SeedConfig `toml:"seed"`
}

type SeedConfig struct {
	Cars      []SeedCar      `toml:"cars"`
	Workshops []SeedWorkshop `toml:"workshops"`
}

type SeedCar struct {
	ID        int64   `toml:"id"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

// SeedWorkshop мастерская; время работы в формате "HH:MM" или "HH:MM:SS"
type SeedWorkshop struct {
	ID          int64   `toml:"id"`
	Name        string  `toml:"name"`
	Latitude    float64 `toml:"latitude"`
	Longitude   float64 `toml:"longitude"`
	OpeningTime string  `toml:"opening_time"`
	ClosingTime string  `toml:"closing_time"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DistanceMatrixConfig настройки внешнего сервиса расстояний
// Пустой api_key означает, что внешняя стратегия не настроена
type DistanceMatrixConfig struct {
	BaseURL           string  `toml:"base_url"`
	APIKey            string  `toml:"api_key"`
	Timeout           int     `toml:"timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

func (c DistanceMatrixConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CacheConfig настройки redis кэша расстояний (ttl в секундах)
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"`
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// RecommendationConfig параметры подбора слотов
type RecommendationConfig struct {
	LookaheadDays int    `toml:"lookahead_days"`
	SlotMinutes   int    `toml:"slot_minutes"`
	Timezone      string `toml:"timezone"`
}

func (c RecommendationConfig) SlotDuration() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

// Location часовой пояс, в котором интерпретируются часы работы и время записи
func (c RecommendationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load читает конфигурацию из файла, применяет значения по умолчанию
// и переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointment_service"
	}

	if c.DistanceMatrix.Timeout == 0 {
		c.DistanceMatrix.Timeout = 5
	}
	if c.DistanceMatrix.Burst == 0 {
		c.DistanceMatrix.Burst = 1
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 86400
	}

	if c.Recommendation.LookaheadDays == 0 {
		c.Recommendation.LookaheadDays = 5
	}
	if c.Recommendation.SlotMinutes == 0 {
		c.Recommendation.SlotMinutes = 60
	}
	if c.Recommendation.Timezone == "" {
		c.Recommendation.Timezone = "UTC"
	}
}

// applyEnv переопределяет секреты переменными окружения
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DISTANCE_MATRIX_API_KEY"); ok {
		c.DistanceMatrix.APIKey = v
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки сразу
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" {
			problems = append(problems, "database.host is required for postgres storage")
		}
		if c.Database.DBName == "" {
			problems = append(problems, "database.dbname is required for postgres storage")
		}
	case StorageDriverMemory:
		problems = append(problems, c.Storage.Seed.validate()...)
	default:
		problems = append(problems, fmt.Sprintf("storage.driver must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver))
	}

	if c.DistanceMatrix.Timeout < 0 {
		problems = append(problems, "distance_matrix.timeout must not be negative")
	}
	if c.DistanceMatrix.RequestsPerSecond < 0 {
		problems = append(problems, "distance_matrix.requests_per_second must not be negative")
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		problems = append(problems, "cache.addr is required when cache is enabled")
	}

	if c.Recommendation.LookaheadDays < 0 {
		problems = append(problems, "recommendation.lookahead_days must not be negative")
	}
	if c.Recommendation.SlotMinutes < 0 {
		problems = append(problems, "recommendation.slot_minutes must not be negative")
	}
	if _, err := c.Recommendation.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("recommendation.timezone: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (s SeedConfig) validate() []string {
	var problems []string

	for i, w := range s.Workshops {
		opening, err := types.NewTimeStringFromString(w.OpeningTime)
		if err != nil {
			problems = append(problems, fmt.Sprintf("storage.seed.workshops[%d].opening_time: %v", i, err))
			continue
		}
		closing, err := types.NewTimeStringFromString(w.ClosingTime)
		if err != nil {
			problems = append(problems, fmt.Sprintf("storage.seed.workshops[%d].closing_time: %v", i, err))
			continue
		}
		if !opening.IsBefore(closing) {
			problems = append(problems, fmt.Sprintf("storage.seed.workshops[%d]: opening_time must be before closing_time", i))
		}
	}

	return problems
}
