// Package config loads and validates application configuration.
//
// Configuration is read from environment variables with the QUIZGEN_ prefix
// (for example QUIZGEN_SERVER_PORT), with sensible defaults for everything
// except the Gemini API key. The loaded struct is validated with
// go-playground/validator before it reaches the rest of the application, so
// downstream code can assume the invariants encoded in the validate tags.
package config
