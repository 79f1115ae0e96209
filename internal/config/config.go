package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	RateSource          string `mapstructure:"RATE_SOURCE"`
	RateRefreshSchedule string `mapstructure:"RATE_REFRESH_SCHEDULE"`

	DBURL       string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	HandoffBackend string        `mapstructure:"HANDOFF_BACKEND"`
	HandoffTTL     time.Duration `mapstructure:"HANDOFF_TTL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`

	SessionIdleTimeout   time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`

	ContentDir string `mapstructure:"CONTENT_DIR"`
}

const (
	RateSourceStatic   = "static"
	RateSourcePostgres = "postgres"

	HandoffMemory = "memory"
	HandoffRedis  = "redis"
)

var defaults = map[string]any{
	"PORT":                   "8080",
	"GIN_MODE":               "debug",
	"LOG_LEVEL":              "info",
	"RATE_SOURCE":            RateSourceStatic,
	"RATE_REFRESH_SCHEDULE":  "@every 5m",
	"DATABASE_URL":           "",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "transfer",
	"DB_PASSWORD":            "transfer_secret",
	"DB_NAME":                "transfer",
	"DB_SSLMODE":             "disable",
	"AUTO_MIGRATE":           false,
	"HANDOFF_BACKEND":        HandoffMemory,
	"HANDOFF_TTL":            "30m",
	"REDIS_ADDR":             "localhost:6379",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"SESSION_IDLE_TIMEOUT":   "30m",
	"SESSION_SWEEP_SCHEDULE": "@every 1m",
	"CONTENT_DIR":            "content",
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.RateSource {
	case RateSourceStatic, RateSourcePostgres:
	default:
		return fmt.Errorf("invalid RATE_SOURCE %q", c.RateSource)
	}
	switch c.HandoffBackend {
	case HandoffMemory, HandoffRedis:
	default:
		return fmt.Errorf("invalid HANDOFF_BACKEND %q", c.HandoffBackend)
	}
	if c.HandoffTTL <= 0 {
		return fmt.Errorf("HANDOFF_TTL must be positive, got %s", c.HandoffTTL)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %s", c.SessionIdleTimeout)
	}
	return nil
}

func (c *Config) DatabaseURL() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
