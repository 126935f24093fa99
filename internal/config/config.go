// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "DICEROLLER_"

// History backends
const (
	HistoryMemory = "memory"
	HistoryRedis  = "redis"
	HistorySQLite = "sqlite"
)

// Config holds server settings
type Config struct {
	GRPCPort       int    `env:"GRPC_PORT"       envDefault:"50051"`
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`
	HistoryBackend string `env:"HISTORY_BACKEND" envDefault:"memory"`
	RedisAddr      string `env:"REDIS_ADDR"      envDefault:"localhost:6379"`
	RedisTLS       bool   `env:"REDIS_TLS"       envDefault:"false"`
	SQLitePath     string `env:"SQLITE_PATH"     envDefault:"dice_rolls.db"`

	// RollSeed makes rolls reproducible; 0 uses real randomness
	RollSeed int64 `env:"ROLL_SEED" envDefault:"0"`
}

// Load reads the process environment
func Load() (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("GRPCPort", "must be between 1 and 65535, got %d", c.GRPCPort)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		vb.Field("LogLevel", errors.GetMessage(err))
	}

	switch c.HistoryBackend {
	case HistoryMemory:
	case HistoryRedis:
		if c.RedisAddr == "" {
			vb.RequiredField("RedisAddr")
		}
	case HistorySQLite:
		if c.SQLitePath == "" {
			vb.RequiredField("SQLitePath")
		}
	default:
		vb.Fieldf("HistoryBackend", "unknown backend %q", c.HistoryBackend)
	}

	return vb.Build()
}

// SlogLevel returns the configured level, falling back to info
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", s)
	}
	return level, nil
}
