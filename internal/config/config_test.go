package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISTANCE_MATRIX_API_KEY", "")
	path := writeConfig(t, `
[storage]
driver = "memory"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Recommendation.LookaheadDays)
	assert.Equal(t, time.Hour, cfg.Recommendation.SlotDuration())
	assert.Equal(t, 5*time.Second, cfg.DistanceMatrix.TimeoutDuration())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.DistanceMatrix.APIKey)
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "localhost"
user = "smc"
password = "secret"
dbname = "appointments"

[distance_matrix]
api_key = "file-key"
timeout = 3
requests_per_second = 10
burst = 5

[cache]
enabled = true
addr = "localhost:6379"
ttl = 60

[recommendation]
timezone = "Asia/Kuala_Lumpur"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "host=localhost port=5432 user=smc password=secret dbname=appointments sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "file-key", cfg.DistanceMatrix.APIKey)
	assert.Equal(t, time.Minute, cfg.Cache.TTLDuration())

	loc, err := cfg.Recommendation.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kuala_Lumpur", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DISTANCE_MATRIX_API_KEY", "env-key")
	t.Setenv("DB_PASSWORD", "env-password")
	path := writeConfig(t, `
[database]
host = "db"
dbname = "appointments"
password = "file-password"

[distance_matrix]
api_key = "file-key"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.DistanceMatrix.APIKey)
	assert.Equal(t, "env-password", cfg.Database.Password)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "sqlite"

[cache]
enabled = true

[recommendation]
timezone = "Mars/Olympus"
`)

	_, err := Load(path)

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "storage.driver")
	assert.Contains(t, err.Error(), "cache.addr")
	assert.Contains(t, err.Error(), "recommendation.timezone")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
}

func TestLoad_MemorySeed(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[[storage.seed.cars]]
id = 1
latitude = 3.139003
longitude = 101.686855

[[storage.seed.workshops]]
id = 10
name = "Central"
latitude = 3.1478
longitude = 101.6953
opening_time = "09:00"
closing_time = "18:00"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Storage.Seed.Cars, 1)
	require.Len(t, cfg.Storage.Seed.Workshops, 1)
	assert.Equal(t, int64(10), cfg.Storage.Seed.Workshops[0].ID)
	assert.Equal(t, "Central", cfg.Storage.Seed.Workshops[0].Name)
}

func TestLoad_MemorySeedInvalidHours(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[[storage.seed.workshops]]
id = 1
name = "Broken"
opening_time = "18:00"
closing_time = "09:00"

[[storage.seed.workshops]]
id = 2
name = "Garbage"
opening_time = "nine"
closing_time = "18:00"
`)

	_, err := Load(path)

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "storage.seed.workshops[0]: opening_time must be before closing_time")
	assert.Contains(t, err.Error(), "storage.seed.workshops[1].opening_time")
}
