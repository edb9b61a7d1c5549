package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration shared by the api and web services.
type Config struct {
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	APIAddr           string `mapstructure:"API_ADDR"`
	WebAddr           string `mapstructure:"WEB_ADDR"`
	APIServerURL      string `mapstructure:"API_SERVER_URL"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFormat         string `mapstructure:"LOG_FORMAT"`
	EnableAdminWrites bool   `mapstructure:"ENABLE_ADMIN_WRITES"`
	GinMode           string `mapstructure:"GIN_MODE"`
}

// Defaults used when neither the .env file nor the environment set a key.
const (
	DefaultDatabaseURL  = "sqlite://tailspin.db"
	DefaultAPIAddr      = ":5100"
	DefaultWebAddr      = ":4321"
	DefaultAPIServerURL = "http://localhost:5100"
)

// Load reads configuration from a .env file in the working directory and
// environment variables. Environment variables take precedence.
func Load() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, dir string) (*Config, error) {
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("DATABASE_URL", DefaultDatabaseURL)
	v.SetDefault("API_ADDR", DefaultAPIAddr)
	v.SetDefault("WEB_ADDR", DefaultWebAddr)
	v.SetDefault("API_SERVER_URL", DefaultAPIServerURL)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("ENABLE_ADMIN_WRITES", false)
	v.SetDefault("GIN_MODE", "debug")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.APIServerURL = strings.TrimRight(cfg.APIServerURL, "/")
	if cfg.APIServerURL == "" {
		return nil, errors.New("API_SERVER_URL must not be empty")
	}
	return &cfg, nil
}
