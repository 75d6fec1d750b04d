package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates the gateway's configuration.
type Config struct {
	Server ServerConfig
	AI     AIConfig
}

// ServerConfig describes the HTTP surface: listen address, CORS
// allow-list, and the per-client rate budget.
type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// AIConfig describes the upstream model and the replay/retry knobs.
type AIConfig struct {
	APIKey       string
	Model        string
	PersonaFile  string
	HistoryLimit int
	MaxAttempts  int
	BaseDelay    time.Duration
}

// Load reads configuration from environment variables. None of it is
// runtime-mutable.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		// Allow either ":8080"-style addresses or a bare port number.
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	origins := splitAndTrim(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost"))
	if len(origins) == 0 {
		return ServerConfig{}, fmt.Errorf("ALLOWED_ORIGINS must name at least one origin prefix")
	}

	limit, err := parsePositiveIntEnv("RATE_LIMIT_MAX_REQUESTS", 20)
	if err != nil {
		return ServerConfig{}, err
	}

	window, err := parseDurationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Addr:            addr,
		AllowedOrigins:  origins,
		RateLimitMax:    limit,
		RateLimitWindow: window,
	}, nil
}

func loadAIConfig() (AIConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return AIConfig{}, fmt.Errorf("GEMINI_API_KEY is required")
	}

	history, err := parsePositiveIntEnv("CHAT_HISTORY_LIMIT", 10)
	if err != nil {
		return AIConfig{}, err
	}

	attempts, err := parsePositiveIntEnv("RETRY_MAX_ATTEMPTS", 3)
	if err != nil {
		return AIConfig{}, err
	}

	baseDelay, err := parseDurationEnv("RETRY_BASE_DELAY", time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:       apiKey,
		Model:        getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		PersonaFile:  getEnvOrDefault("PERSONA_FILE", "persona.yaml"),
		HistoryLimit: history,
		MaxAttempts:  attempts,
		BaseDelay:    baseDelay,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parsePositiveIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 1 {
		return 0, fmt.Errorf("invalid %s value %d: must be positive", key, val)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}
