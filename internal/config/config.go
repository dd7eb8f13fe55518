// Package config loads service configuration from the environment, with an
// optional YAML file layered on top for deployments that ship a config file.
package config

import (
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/agendalabs/meetingd/pkg/logger"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string `env:"MEETINGD_HOST,default=0.0.0.0" yaml:"host"`
	Port            int    `env:"MEETINGD_PORT,default=8080" yaml:"port"`
	ReadTimeout     int    `env:"MEETINGD_READ_TIMEOUT,default=15" yaml:"read_timeout"`
	WriteTimeout    int    `env:"MEETINGD_WRITE_TIMEOUT,default=15" yaml:"write_timeout"`
	ShutdownTimeout int    `env:"MEETINGD_SHUTDOWN_TIMEOUT,default=10" yaml:"shutdown_timeout"`
	AuditLogPath    string `env:"MEETINGD_AUDIT_LOG" yaml:"audit_log"`
}

// DatabaseConfig holds the storage backend settings. An empty DSN selects the
// in-memory store.
type DatabaseConfig struct {
	Driver          string `env:"MEETINGD_DB_DRIVER,default=postgres" yaml:"driver"`
	DSN             string `env:"MEETINGD_DB_DSN" yaml:"dsn"`
	MaxOpenConns    int    `env:"MEETINGD_DB_MAX_OPEN_CONNS,default=25" yaml:"max_open_conns"`
	MaxIdleConns    int    `env:"MEETINGD_DB_MAX_IDLE_CONNS,default=5" yaml:"max_idle_conns"`
	ConnMaxLifetime int    `env:"MEETINGD_DB_CONN_MAX_LIFETIME,default=300" yaml:"conn_max_lifetime"`
}

// RateLimitConfig holds per-caller request throttling settings.
type RateLimitConfig struct {
	Enabled           bool `env:"MEETINGD_RATELIMIT_ENABLED,default=true" yaml:"enabled"`
	RequestsPerSecond int  `env:"MEETINGD_RATELIMIT_RPS,default=50" yaml:"requests_per_second"`
	Burst             int  `env:"MEETINGD_RATELIMIT_BURST,default=100" yaml:"burst"`
}

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig         `yaml:"server"`
	Database  DatabaseConfig       `yaml:"database"`
	Logging   logger.LoggingConfig `yaml:"logging"`
	RateLimit RateLimitConfig      `yaml:"rate_limit"`
}

// Load decodes configuration from the environment. If MEETINGD_CONFIG_FILE
// points at a YAML file, its values override the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if path := os.Getenv("MEETINGD_CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return &cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
