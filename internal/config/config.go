package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	RedisURL        string
	ExplainCacheTTL time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string
	FastModel     string
	DeepModel     string
	MaxTokens     int

	RetryAttempts     int
	RetryBackoff      time.Duration
	CompletionTimeout time.Duration

	// ForceSolver routes every explain request through the solver pipeline
	// regardless of detected shape. Injected here at startup; there is no
	// runtime-mutable equivalent.
	ForceSolver bool

	Locale string

	MissionRateLimit int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PLMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PLMS Tutor API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("explain.cache_ttl", "10m")
	v.SetDefault("ai.fast_model", "gpt-4o-mini")
	v.SetDefault("ai.deep_model", "gpt-4o")
	v.SetDefault("ai.max_tokens", 1024)
	v.SetDefault("ai.retry_attempts", 3)
	v.SetDefault("ai.retry_backoff", "500ms")
	v.SetDefault("ai.completion_timeout", "30s")
	v.SetDefault("force_solver", false)
	v.SetDefault("locale", "zh-TW")
	v.SetDefault("mission.rate_limit", 60)

	cacheTTL, err := time.ParseDuration(v.GetString("explain.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid explain cache ttl: %w", err)
	}

	retryBackoff, err := time.ParseDuration(v.GetString("ai.retry_backoff"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid retry backoff: %w", err)
	}

	completionTimeout, err := time.ParseDuration(v.GetString("ai.completion_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid completion timeout: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		RedisURL:          v.GetString("redis.url"),
		ExplainCacheTTL:   cacheTTL,
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIBaseURL:     v.GetString("openai_base_url"),
		FastModel:         v.GetString("ai.fast_model"),
		DeepModel:         v.GetString("ai.deep_model"),
		MaxTokens:         v.GetInt("ai.max_tokens"),
		RetryAttempts:     v.GetInt("ai.retry_attempts"),
		RetryBackoff:      retryBackoff,
		CompletionTimeout: completionTimeout,
		ForceSolver:       v.GetBool("force_solver"),
		Locale:            v.GetString("locale"),
		MissionRateLimit:  v.GetInt("mission.rate_limit"),
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("openai api key must be provided")
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}

	if cfg.MissionRateLimit <= 0 {
		cfg.MissionRateLimit = 60
	}

	return cfg, nil
}
