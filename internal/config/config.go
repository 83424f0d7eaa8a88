package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the chatbot backend.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	LogLevel         string
	LogPretty        bool

	AllowAnyOrigin bool

	// ActiveWindow is the trailing interval used to count "active"
	// conversations in admin stats.
	ActiveWindow      time.Duration
	ChatContextLimit  int
	GenerationTimeout time.Duration

	DatabaseURL string

	OpenAIAPIKey string
	OpenAIModel  string

	// Kakao OAuth credentials are consumed by the login front, not by this
	// core; they are enumerated here so one loader owns the environment.
	KakaoClientID     string
	KakaoClientSecret string
	KakaoCallbackURI  string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:          envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:  envOrDefault("APP_METRICS_NAMESPACE", "unoa"),
		LogLevel:          envOrDefault("APP_LOG_LEVEL", "info"),
		LogPretty:         false,
		AllowAnyOrigin:    false,
		ActiveWindow:      24 * time.Hour,
		ChatContextLimit:  20,
		GenerationTimeout: 30 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		DatabaseURL:       envTrimmed("DATABASE_URL"),
		OpenAIAPIKey:      envTrimmed("OPENAI_API_KEY"),
		OpenAIModel:       envOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
		KakaoClientID:     envTrimmed("KAKAO_CLIENT_ID"),
		KakaoClientSecret: envTrimmed("KAKAO_CLIENT_SECRET"),
		KakaoCallbackURI:  envTrimmed("KAKAO_CALLBACK_URI"),
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ActiveWindow, err = durationFromEnv("APP_ACTIVE_WINDOW", cfg.ActiveWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.GenerationTimeout, err = durationFromEnv("APP_GENERATION_TIMEOUT", cfg.GenerationTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatContextLimit, err = intFromEnv("APP_CHAT_CONTEXT_LIMIT", cfg.ChatContextLimit)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.LogPretty, err = boolFromEnv("APP_LOG_PRETTY", cfg.LogPretty)
	if err != nil {
		return Config{}, err
	}

	if cfg.ActiveWindow < time.Minute {
		return Config{}, fmt.Errorf("APP_ACTIVE_WINDOW must be at least 1m")
	}
	if cfg.GenerationTimeout < time.Second {
		return Config{}, fmt.Errorf("APP_GENERATION_TIMEOUT must be at least 1s")
	}
	if cfg.ChatContextLimit <= 0 {
		return Config{}, fmt.Errorf("APP_CHAT_CONTEXT_LIMIT must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(envTrimmed(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
