package config_test

import (
	"testing"

	"tourdesk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.Equal(t, "document.saved", cfg.Kafka.Topics.DocumentSaved)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "documents", cfg.Document.ArchiveDirectory)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "disable", cfg.DB.Postgres.Read.SSLMode)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.db")
	t.Setenv("APP_RATE_LIMITER_ENABLE", "true")
	t.Setenv("DOCUMENT_CURRENCY_LABEL", "USD")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "replica.db", cfg.DB.Postgres.Read.Host)
	assert.True(t, cfg.App.RateLimiter.Enable)
	assert.Equal(t, "USD", cfg.Document.CurrencyLabel)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "an hour")

	_, err := config.Load()
	require.Error(t, err)
}
