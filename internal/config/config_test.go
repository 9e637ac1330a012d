package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/storefront", cfg.DatabaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestEnvIntDefault_BadValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	assert.Equal(t, 8080, EnvIntDefault("SERVER_PORT", 8080))
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a"}, CSV("a"))
	assert.Equal(t, []string{"a", "b"}, CSV(" a , b "))
	assert.Empty(t, CSV(" , ,"))
}
