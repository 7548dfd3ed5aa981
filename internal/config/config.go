package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type Config struct {
	// Server
	Host        string `json:"host" envconfig:"HOST"`
	Port        int    `json:"port" envconfig:"PORT"`
	Environment string `json:"environment" envconfig:"ENV"`
	LogLevel    string `json:"log_level" envconfig:"LOG_LEVEL"`

	// CORS
	CORSOrigins []string `json:"cors_origins" envconfig:"CORS_ORIGINS"`

	// Auth
	APIKeyHeader string   `json:"api_key_header" envconfig:"API_KEY_HEADER"`
	APIKeys      []string `json:"api_keys" envconfig:"API_KEYS"`
	EnableAuth   bool     `json:"enable_auth" envconfig:"ENABLE_AUTH"`

	// Rate limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute" envconfig:"RATE_LIMIT_PER_MINUTE"`

	// Persistence
	DatabaseURL string `json:"database_url" envconfig:"DATABASE_URL"`

	// Chat
	HistoryWindow      int `json:"history_window" envconfig:"HISTORY_WINDOW"`
	ToolTimeoutSeconds int `json:"tool_timeout_seconds" envconfig:"TOOL_TIMEOUT_SECONDS"`
	StreamDelayMs      int `json:"stream_delay_ms" envconfig:"STREAM_DELAY_MS"`

	// AI / LLM
	AnthropicAPIKey  string `json:"anthropic_api_key" envconfig:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `json:"anthropic_base_url" envconfig:"ANTHROPIC_BASE_URL"`
	AnthropicModel   string `json:"anthropic_model" envconfig:"ANTHROPIC_MODEL"`

	// MCP
	MCPStdio bool `json:"mcp_stdio" envconfig:"MCP_STDIO"`

	// Audit
	EnableAuditLogging bool `json:"enable_audit_logging" envconfig:"ENABLE_AUDIT_LOGGING"`
}

// Load builds the configuration from defaults, an optional JSON file pointed
// to by ORCH_CONFIG, and ORCH_-prefixed environment variables (bare names such
// as DATABASE_URL and ANTHROPIC_API_KEY are honored as fallbacks).
func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         true,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		HistoryWindow:      DefaultHistoryWindow,
		ToolTimeoutSeconds: DefaultToolTimeoutSeconds,
		StreamDelayMs:      DefaultStreamDelayMs,
		AnthropicModel:     DefaultAnthropicModel,
		EnableAuditLogging: true,
	}

	if path := os.Getenv("ORCH_CONFIG"); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("orch", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

// ParsedLogLevel maps the configured level string onto a zerolog level.
func (c *Config) ParsedLogLevel() zerolog.Level {
	switch c.LogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
