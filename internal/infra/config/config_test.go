package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/infra/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "memory", cfg.StorageMode)
	require.Equal(t, "bookingengine", cfg.MongoDB)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, 5*time.Minute, cfg.QuoteCacheTTL)
	require.Equal(t, 168*time.Hour, cfg.IdempotencyTTL)
	require.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	require.Equal(t, "EUR", cfg.Currency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("RETRY_BACKOFF", "2s, 10s")
	t.Setenv("QUOTE_CACHE_TTL", "90s")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.HTTPAddr)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, []time.Duration{2 * time.Second, 10 * time.Second}, cfg.RetryBackoff)
	require.Equal(t, 90*time.Second, cfg.QuoteCacheTTL)
}

func TestLoad_MongoModeRequiresURI(t *testing.T) {
	t.Setenv("STORAGE_MODE", "mongo")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "mongo", cfg.StorageMode)
}

func TestLoad_RejectsUnknownStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "postgres")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_RejectsMalformedDurations(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	_, err := config.Load()
	require.Error(t, err)
}
