package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GRPC_PORT", "HTTP_PORT", "DB_HOST", "DB_PASSWORD", "KAFKA_BROKERS", "DEFAULT_TOP_N", "JWT_SECRET", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "cliquealo.credit-events", cfg.Kafka.EventsTopic)
	assert.Equal(t, "cliquealo.bank-partners", cfg.Kafka.BankPartnersTopic)
	assert.Equal(t, 3, cfg.Simulation.DefaultTopN)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TLS.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("DEFAULT_TOP_N", "5")
	t.Setenv("JWT_EXPIRATION", "15m")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.TLS)
	assert.Equal(t, 5, cfg.Simulation.DefaultTopN)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("JWT_SECRET", "jwt-secret")
		return Load()
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := valid()
		cfg.DB.Password = ""
		cfg.JWT.Secret = ""
		cfg.Simulation.DefaultTopN = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "DEFAULT_TOP_N")
	})

	t.Run("tls cert without key", func(t *testing.T) {
		cfg := valid()
		cfg.TLS.CertFile = "server.pem"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TLS_CERT_FILE")
	})
}
