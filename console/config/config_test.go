package config_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-console/console/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load(config.WithLogLevel(zapcore.DebugLevel), config.WithWriteTimeout(time.Minute))
		require.NoError(t, err)
		require.Equal(t, "localhost", cfg.Server.Host)
		require.Equal(t, "8090", cfg.Server.Port)
		require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
		require.Equal(t, "http://localhost:5000/api", cfg.LibraryAPI.BaseURL)
		require.Equal(t, time.Minute, cfg.LibraryAPI.Timeout)
		require.Equal(t, 10, cfg.Breaker.RecordLength)
		require.Equal(t, 0.5, cfg.Breaker.Percentile)
		require.False(t, cfg.Kafka.Enabled())
		require.Equal(t, "library-activity", cfg.Kafka.ActivityTopic)
		require.Equal(t, "library-activity-log", cfg.Kafka.ConsumerGroup)
		require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("CONSOLE_HTTP_PORT", "9000")
		t.Setenv("LIBRARY_API_URL", "http://api.local/v2")
		t.Setenv("KAFKA_ADDRS", "k1:9092,k2:9092")
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("BREAKER_TIMEOUT", "30s")

		cfg, err := config.Load(config.WithLogLevel(zapcore.DebugLevel))
		require.NoError(t, err)
		require.Equal(t, "9000", cfg.Server.Port)
		require.Equal(t, "http://api.local/v2", cfg.LibraryAPI.BaseURL)
		require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addrs)
		require.True(t, cfg.Kafka.Enabled())
		require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)
		require.Equal(t, 30*time.Second, cfg.Breaker.Timeout)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("LIBRARY_API_TIMEOUT", "soon")
		_, err := config.Load()
		require.Error(t, err)
	})
}
