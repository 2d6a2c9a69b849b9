package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	retry "github.com/avast/retry-go/v5"
	"github.com/phrazzld/quizgen-api/internal/config"
	"github.com/phrazzld/quizgen-api/internal/domain"
	"github.com/phrazzld/quizgen-api/internal/generation"
	"google.golang.org/genai"
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate quiz questions.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Compile-time check that GeminiGenerator satisfies the interface.
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the
// provided dependencies.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With("component", "gemini_generator"),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Generate produces one validated quiz question. Safe for concurrent use:
// the background worker and any number of fallback paths may call it at the
// same time.
func (g *GeminiGenerator) Generate(ctx context.Context) (*domain.Question, error) {
	text, err := g.callGeminiWithRetry(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("generation cancelled: %w", ctx.Err())
		}
		return nil, err
	}

	question, err := parseQuestion(text)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini returned an unusable question",
			"error", err,
			"response_length", len(text))
		return nil, err
	}

	g.logger.DebugContext(ctx, "question generated",
		"answer_count", len(question.Answers),
		"code_length", len(question.Code))

	return question, nil
}

// callGeminiWithRetry calls the Gemini API, retrying transient failures
// with exponential backoff and jitter. Permanent failures (safety blocks,
// empty responses) are marked unrecoverable and returned immediately.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context) (string, error) {
	attempts := g.config.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	return retry.NewWithData[string](
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(g.config.RetryBaseDelay),
		retry.MaxJitter(g.config.RetryBaseDelay/2),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			g.logger.WarnContext(ctx, "Gemini API call failed, retrying",
				"attempt", n+1,
				"max_attempts", attempts,
				"error", err)
		}),
	).Do(func() (string, error) {
		return g.callOnce(ctx)
	})
}

// callOnce performs a single Gemini API round trip and extracts the
// response text.
func (g *GeminiGenerator) callOnce(ctx context.Context) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(questionPrompt), nil)
	if err != nil {
		// Transport-level failures are assumed transient and retried.
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", retry.Unrecoverable(
			fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse))
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", retry.Unrecoverable(
			fmt.Errorf("%w: generation stopped by safety filters", generation.ErrContentBlocked))
	}

	text := resp.Text()
	if text == "" {
		return "", retry.Unrecoverable(
			fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse))
	}

	return text, nil
}

// parseQuestion decodes the model's response text into a validated
// domain.Question.
func parseQuestion(text string) (*domain.Question, error) {
	cleaned := stripCodeFence(text)

	var schema questionSchema
	if err := json.Unmarshal([]byte(cleaned), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", generation.ErrInvalidResponse, err)
	}

	question, err := domain.NewQuestion(
		schema.Question,
		schema.Code,
		schema.Answers,
		schema.CorrectAnswer,
		schema.Explanation,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}

	return question, nil
}

// stripCodeFence removes a surrounding Markdown code fence. Despite being
// told not to, models regularly wrap the JSON object in ```json ... ```.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}

	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}
