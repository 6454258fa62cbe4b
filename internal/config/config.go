package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	JournalBackendMemory = "memory"
	JournalBackendRedis  = "redis"
)

// Config holds all service settings. Every field comes from the environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort string `env:"GRPC_PORT" envDefault:"50051"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Directory of *.yaml LMS tables. Empty uses the embedded WHO tables.
	ReferenceTableDir string `env:"REFERENCE_TABLE_DIR"`

	// Journal
	JournalBackend string        `env:"JOURNAL_BACKEND" envDefault:"memory"`
	JournalTTL     time.Duration `env:"JOURNAL_TTL" envDefault:"24h"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL; empty keeps saved assessments in memory.
	PostgresDSN string `env:"POSTGRES_DSN"`

	// RabbitMQ; empty disables publishing assessment events.
	AMQPURL   string `env:"AMQP_URL"`
	AMQPQueue string `env:"AMQP_QUEUE" envDefault:"growth.assessments"`

	// HTTP server
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"*"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.JournalBackend {
	case JournalBackendMemory, JournalBackendRedis:
	default:
		return fmt.Errorf("invalid JOURNAL_BACKEND %q: want %q or %q", c.JournalBackend, JournalBackendMemory, JournalBackendRedis)
	}
	if c.JournalTTL <= 0 {
		return fmt.Errorf("invalid JOURNAL_TTL %s: must be positive", c.JournalTTL)
	}
	if c.AMQPURL != "" && c.AMQPQueue == "" {
		return fmt.Errorf("AMQP_QUEUE must not be empty when AMQP_URL is set")
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	return nil
}
