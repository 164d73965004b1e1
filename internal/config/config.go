package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported HTTP transports.
const (
	TransportEcho = "echo"
	TransportChi  = "chi"
	TransportGin  = "gin"
)

// Supported template providers.
const (
	ProviderAI     = "ai"
	ProviderStatic = "static"
)

const defaultShutdownTimeout = 10 * time.Second

// OpenAIConfig holds the settings of the AI web search provider.
type OpenAIConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	SearchContextSize string
}

// CORSConfig lists the cross-origin headers written on every response.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port              string
	Transport         string
	Provider          string
	OpenAI            OpenAIConfig
	CORS              CORSConfig
	LegacyErrorStatus bool
	DatabaseURL       string
	MetricsEnabled    bool
	LogLevel          string
	LogFormat         string
	ShutdownTimeout   time.Duration
}

// Load reads configuration from environment variables, an optional CONFIG_FILE
// and applies sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := strings.TrimSpace(v.GetString("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:      v.GetString("PORT"),
		Transport: strings.ToLower(strings.TrimSpace(v.GetString("HTTP_TRANSPORT"))),
		Provider:  strings.ToLower(strings.TrimSpace(v.GetString("TEMPLATE_PROVIDER"))),
		OpenAI: OpenAIConfig{
			APIKey:            strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
			BaseURL:           strings.TrimRight(v.GetString("OPENAI_BASE_URL"), "/"),
			Model:             v.GetString("OPENAI_MODEL"),
			SearchContextSize: strings.ToLower(v.GetString("OPENAI_SEARCH_CONTEXT_SIZE")),
		},
		CORS: CORSConfig{
			AllowOrigin:  v.GetString("CORS_ALLOW_ORIGIN"),
			AllowMethods: v.GetString("CORS_ALLOW_METHODS"),
			AllowHeaders: v.GetString("CORS_ALLOW_HEADERS"),
		},
		LegacyErrorStatus: v.GetBool("LEGACY_ERROR_STATUS"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		MetricsEnabled:    v.GetBool("METRICS_ENABLED"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		ShutdownTimeout:   parseDuration(v.GetString("SHUTDOWN_TIMEOUT")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AIEnabled reports whether the deployment delegates to the AI search provider.
func (c *Config) AIEnabled() bool {
	return c.Provider == ProviderAI
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_TRANSPORT", TransportEcho)
	v.SetDefault("TEMPLATE_PROVIDER", ProviderAI)
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_SEARCH_CONTEXT_SIZE", "medium")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("CORS_ALLOW_METHODS", "POST, OPTIONS")
	v.SetDefault("CORS_ALLOW_HEADERS", "Content-Type")
	v.SetDefault("LEGACY_ERROR_STATUS", false)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
}

func (c *Config) validate() error {
	switch c.Transport {
	case TransportEcho, TransportChi, TransportGin:
	default:
		return fmt.Errorf("invalid HTTP_TRANSPORT value: %q", c.Transport)
	}

	switch c.Provider {
	case ProviderAI, ProviderStatic:
	default:
		return fmt.Errorf("invalid TEMPLATE_PROVIDER value: %q", c.Provider)
	}

	switch c.OpenAI.SearchContextSize {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("invalid OPENAI_SEARCH_CONTEXT_SIZE value: %q", c.OpenAI.SearchContextSize)
	}

	if strings.TrimSpace(c.CORS.AllowOrigin) == "" {
		return fmt.Errorf("CORS_ALLOW_ORIGIN must not be empty")
	}
	return nil
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil || d <= 0 {
		return defaultShutdownTimeout
	}
	return d
}
