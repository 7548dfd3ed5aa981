package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultHistoryWindow      = 25
	DefaultToolTimeoutSeconds = 30
	DefaultStreamDelayMs      = 50

	DefaultAnthropicModel = "claude-sonnet-4-6"
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
