package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults select in-memory backends", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("REDIS_URL", "")
		t.Setenv("KAFKA_BROKERS", "")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Empty(t, cfg.Database.URL)
		assert.Empty(t, cfg.Redis.URL)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
		assert.Equal(t, int32(3), cfg.Kafka.Partitions)
		assert.Equal(t, 5, cfg.Kafka.BreakerFailures)
		assert.Equal(t, 30*time.Second, cfg.Kafka.BreakerCooldown)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("NESTEGG_ADDR", ":9090")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("NESTEGG_LOCK_TTL", "2s")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 2*time.Second, cfg.Lock.TTL)
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("NESTEGG_LOCK_TTL", "soon")

		_, err := FromEnv()
		require.Error(t, err)
	})
}
