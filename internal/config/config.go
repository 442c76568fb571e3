package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v2"
)

// envConfig is populated from the environment (optionally seeded by a .env
// file) and may be overlaid by an optional YAML config file.
type envConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string
	LOG_LEVEL     string

	GCP_PROJECT_ID string

	AUTH_ISSUER   string
	AUTH_AUDIENCE string

	REDIS_ADDR          string
	RATE_LIMIT          int
	RATE_WINDOW_SECONDS int

	CORS_ORIGINS []string
}

// DefaultEnvConfig is the process-wide configuration, valid after
// LoadEnvConfig.
var DefaultEnvConfig envConfig

// RateWindow returns the rate limiter window as a duration.
func (c *envConfig) RateWindow() time.Duration {
	return time.Duration(c.RATE_WINDOW_SECONDS) * time.Second
}

// JWKSURL returns the issuer's published key-set endpoint.
func (c *envConfig) JWKSURL() string {
	return strings.TrimSuffix(c.AUTH_ISSUER, "/") + "/.well-known/jwks.json"
}

// LoadEnvConfig reads .env (when present), then the environment, then an
// optional config.yaml overlay pointed at by CONFIG_FILE.
func LoadEnvConfig() error {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	DefaultEnvConfig = envConfig{
		APP_PORT:            getEnv("APP_PORT", "8080"),
		LOG_FILE_PATH:       getEnv("LOG_FILE_PATH", ""),
		LOG_LEVEL:           getEnv("LOG_LEVEL", "info"),
		GCP_PROJECT_ID:      getEnv("GCP_PROJECT_ID", ""),
		AUTH_ISSUER:         getEnv("AUTH_ISSUER", ""),
		AUTH_AUDIENCE:       getEnv("AUTH_AUDIENCE", ""),
		REDIS_ADDR:          getEnv("REDIS_ADDR", "localhost:6379"),
		RATE_LIMIT:          getEnvInt("RATE_LIMIT", 30),
		RATE_WINDOW_SECONDS: getEnvInt("RATE_WINDOW_SECONDS", 60),
		CORS_ORIGINS:        splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := applyYAMLOverlay(path); err != nil {
			return fmt.Errorf("failed to apply config overlay %s: %w", path, err)
		}
	}

	if DefaultEnvConfig.AUTH_ISSUER == "" {
		return fmt.Errorf("AUTH_ISSUER must be set")
	}
	if DefaultEnvConfig.AUTH_AUDIENCE == "" {
		return fmt.Errorf("AUTH_AUDIENCE must be set")
	}
	if DefaultEnvConfig.GCP_PROJECT_ID == "" {
		return fmt.Errorf("GCP_PROJECT_ID must be set")
	}
	return nil
}

// yamlOverlay mirrors the overridable subset of envConfig.
type yamlOverlay struct {
	Port        string   `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	RateLimit   int      `yaml:"rate_limit"`
	RateWindow  int      `yaml:"rate_window_seconds"`
	CorsOrigins []string `yaml:"cors_origins"`
}

func applyYAMLOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var o yamlOverlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return err
	}
	if o.Port != "" {
		DefaultEnvConfig.APP_PORT = o.Port
	}
	if o.LogLevel != "" {
		DefaultEnvConfig.LOG_LEVEL = o.LogLevel
	}
	if o.RateLimit > 0 {
		DefaultEnvConfig.RATE_LIMIT = o.RateLimit
	}
	if o.RateWindow > 0 {
		DefaultEnvConfig.RATE_WINDOW_SECONDS = o.RateWindow
	}
	if len(o.CorsOrigins) > 0 {
		DefaultEnvConfig.CORS_ORIGINS = o.CorsOrigins
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
