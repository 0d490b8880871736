package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	OutputDir        string
	ClaudeAPIKey     string
	ClaudeModel      string
	ClaudeBaseURL    string
	FalAPIKey        string
	FalBaseURL       string
	PrimaryModel     string
	SecondaryModel   string
	ClaudeTimeout    time.Duration
	FluxTimeout      time.Duration
	DownloadTimeout  time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Credentials are read once here and injected into the
// backend clients; nothing else in the process touches the environment
// afterwards.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		OutputDir:        getEnv("OUTPUT_DIR", "output"),
		ClaudeAPIKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		ClaudeBaseURL:    getEnv("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		FalAPIKey:        os.Getenv("FAL_KEY"),
		FalBaseURL:       getEnv("FAL_BASE_URL", "https://fal.run"),
		PrimaryModel:     getEnv("FLUX_PRIMARY_MODEL", "fal-ai/flux-pro"),
		SecondaryModel:   getEnv("FLUX_SECONDARY_MODEL", "fal-ai/flux/dev"),
		ClaudeTimeout:    time.Second * time.Duration(getEnvInt("CLAUDE_TIMEOUT_SECONDS", 30)),
		FluxTimeout:      time.Second * time.Duration(getEnvInt("FLUX_TIMEOUT_SECONDS", 90)),
		DownloadTimeout:  time.Second * time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	if cfg.ClaudeAPIKey == "" {
		return nil, fmt.Errorf("CLAUDE_API_KEY is required")
	}

	if cfg.FalAPIKey == "" {
		return nil, fmt.Errorf("FAL_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
