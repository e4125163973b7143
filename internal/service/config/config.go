package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	defaultBackendURL     = ":8000"
	defaultFrontendURL    = "*"
	defaultRequestTimeout = 10 * time.Second
	defaultConnectTimeout = 5 * time.Second
	defaultSSLMode        = "disable"
)

type Config struct {
	BackendURL     string         `koanf:"backend_url" validate:"required"`
	FrontendURL    string         `koanf:"frontend_url" validate:"required"`
	RequestTimeout time.Duration  `koanf:"request_timeout" validate:"gt=0"`
	DB             DatabaseConfig `koanf:"db"`
}

type DatabaseConfig struct {
	Host           string        `koanf:"host"`
	Port           string        `koanf:"port"`
	User           string        `koanf:"user"`
	Pass           string        `koanf:"pass"`
	Name           string        `koanf:"name"`
	SSLMode        string        `koanf:"sslmode"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"gt=0"`
}

// Load reads the configuration from the environment (and .env, if present).
// Keys are read with the given prefix, e.g. "TEST_" turns TEST_DB_HOST into db.host.
func Load(prefix string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return keyFromEnv(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// keyFromEnv maps DB_HOST to db.host and BACKEND_URL to backend_url.
func keyFromEnv(s string) string {
	s = strings.ToLower(s)
	if strings.HasPrefix(s, "db_") {
		return "db." + strings.TrimPrefix(s, "db_")
	}
	return s
}

func (c *Config) applyDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = defaultBackendURL
	}
	if c.FrontendURL == "" {
		c.FrontendURL = defaultFrontendURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = defaultSSLMode
	}
	if c.DB.ConnectTimeout == 0 {
		c.DB.ConnectTimeout = defaultConnectTimeout
	}
}
