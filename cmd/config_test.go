package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_USER", "fulfillment")
	t.Setenv("DB_NAME", "orders")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SslMode)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, 2*time.Second, cfg.Redis.LockWait)
	assert.Equal(t, 4*time.Hour, cfg.Backlog.Threshold)
	assert.Equal(t, "0 */5 * * * *", cfg.Backlog.Schedule)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_USER", "fulfillment")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ORDER_LOCK_WAIT", "500ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("HTTP_RATE_LIMIT", "25.5")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.LockWait)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.InDelta(t, 25.5, cfg.RateLimit, 0.001)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_USER=fromfile\nDB_NAME=orders\nDB_HOST=db\n"), 0o600))
	// godotenv does not override variables that are already set
	t.Setenv("DB_HOST", "override")
	t.Cleanup(func() {
		os.Unsetenv("DB_USER")
		os.Unsetenv("DB_NAME")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.Database.User)
	assert.Equal(t, "override", cfg.Database.Host)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("DB_USER", "fulfillment")
	t.Setenv("DB_NAME", "orders")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "orders")

	_, err := LoadConfig("")
	require.ErrorContains(t, err, "DB_USER")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "orders", SslMode: "disable"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=orders sslmode=disable", cfg.DSN())
}
