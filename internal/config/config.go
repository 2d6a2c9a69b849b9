package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Quiz   QuizConfig   `mapstructure:"quiz"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// MaxRetries is the number of additional attempts after the first
	// failed Gemini call. Zero disables retrying.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// RetryBaseDelay is the initial backoff delay between Gemini call
	// attempts; subsequent delays grow exponentially with jitter.
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gte=0"`
}

// QuizConfig contains the prefetch cache and session settings.
type QuizConfig struct {
	// CacheCapacity is the total number of ready-to-serve question slots.
	CacheCapacity int `mapstructure:"cache_capacity" validate:"required,gt=0"`

	// LowWatermark is the cache size below which the background worker
	// starts generating replacements. Must stay below CacheCapacity.
	LowWatermark int `mapstructure:"low_watermark" validate:"gte=0,ltfield=CacheCapacity"`

	// PollInterval is how long the worker sleeps between size checks while
	// the cache is at or above the watermark.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`

	// FetchTimeout is how long a consumer waits for a cached question
	// before falling back to synchronous generation.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`

	// SessionLength is the number of questions per quiz session.
	SessionLength int `mapstructure:"session_length" validate:"required,gt=0"`

	// SessionTTL is how long an idle session is kept before expiry.
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`

	// MaxSessions bounds the number of concurrently tracked sessions.
	MaxSessions int `mapstructure:"max_sessions" validate:"required,gt=0"`
}
