package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended (with an underscore) to every environment variable
// the loader reads, e.g. QUIZGEN_SERVER_PORT.
const envPrefix = "QUIZGEN"

// Load reads configuration from environment variables, applies defaults, and
// validates the result. Environment variables use the QUIZGEN_ prefix with
// underscores separating the config path (QUIZGEN_QUIZ_CACHE_CAPACITY).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// the required keys that have no default explicitly.
	if err := v.BindEnv("llm.gemini_api_key"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every setting that has one.
// The cache defaults mirror the sizing the service was originally tuned
// with: 40 slots, refill below 10, 2s poll, 10s consumer wait.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_base_delay", "2s")

	v.SetDefault("quiz.cache_capacity", 40)
	v.SetDefault("quiz.low_watermark", 10)
	v.SetDefault("quiz.poll_interval", "2s")
	v.SetDefault("quiz.fetch_timeout", "10s")
	v.SetDefault("quiz.session_length", 5)
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("quiz.max_sessions", 1024)
}
