package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process-level configuration. Empty backend URLs select the
// in-memory implementation of that concern so the service runs with no
// dependencies in development.
type Server struct {
	Addr           string        `env:"NESTEGG_ADDR" envDefault:":8080"`
	LogLevel       string        `env:"NESTEGG_LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"NESTEGG_REQUEST_TIMEOUT" envDefault:"30s"`
	// SeedDemoData loads a demo catalog, profile and coverage records into the in-memory stores.
	SeedDemoData bool `env:"NESTEGG_SEED_DEMO" envDefault:"false"`

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Lock     LockConfig
	Tracing  TracingConfig
}

// DatabaseConfig configures the Postgres connection pool.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	TxTimeout       time.Duration `env:"DATABASE_TX_TIMEOUT" envDefault:"5s"`
}

// RedisConfig configures the Redis client used for recompute locks.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the contribution change-event publisher.
type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic       string   `env:"KAFKA_CONTRIBUTION_TOPIC" envDefault:"nestegg.contributions"`
	Partitions  int32    `env:"KAFKA_TOPIC_PARTITIONS" envDefault:"3"`
	Replication int16    `env:"KAFKA_TOPIC_REPLICATION" envDefault:"1"`
	// BreakerFailures consecutive produce failures stop publishing for BreakerCooldown.
	BreakerFailures int           `env:"KAFKA_BREAKER_FAILURES" envDefault:"5"`
	BreakerCooldown time.Duration `env:"KAFKA_BREAKER_COOLDOWN" envDefault:"30s"`
}

// LockConfig bounds how long a per-user recompute lock is held and awaited.
type LockConfig struct {
	TTL         time.Duration `env:"NESTEGG_LOCK_TTL" envDefault:"10s"`
	WaitTimeout time.Duration `env:"NESTEGG_LOCK_WAIT" envDefault:"5s"`
}

// TracingConfig enables OTLP span export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string  `env:"NESTEGG_OTEL_ENDPOINT"`
	ServiceName string  `env:"NESTEGG_OTEL_SERVICE_NAME" envDefault:"nestegg"`
	SampleRatio float64 `env:"NESTEGG_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
