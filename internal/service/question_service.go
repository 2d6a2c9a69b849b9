package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/quizgen-api/internal/cache"
	"github.com/phrazzld/quizgen-api/internal/domain"
	"github.com/phrazzld/quizgen-api/internal/events"
	"github.com/phrazzld/quizgen-api/internal/generation"
)

// QuestionService hands out ready-to-serve questions with a bounded-latency
// contract: the best case is a non-blocking cache drain, the worst case is
// one fetch timeout plus one synchronous generator call.
type QuestionService struct {
	cache        *cache.PrefetchCache
	generator    generation.Generator
	emitter      events.EventEmitter
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewQuestionService creates a QuestionService with the given dependencies.
func NewQuestionService(
	c *cache.PrefetchCache,
	generator generation.Generator,
	emitter events.EventEmitter,
	fetchTimeout time.Duration,
	logger *slog.Logger,
) (*QuestionService, error) {
	if c == nil {
		return nil, errors.New("cache cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if fetchTimeout <= 0 {
		return nil, errors.New("fetch timeout must be positive")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &QuestionService{
		cache:        c,
		generator:    generator,
		emitter:      emitter,
		fetchTimeout: fetchTimeout,
		logger:       logger.With("component", "question_service"),
	}, nil
}

// Next returns one question for the caller, in three escalating steps:
//
//  1. Drain the cache without blocking. The common case; never touches the
//     generator.
//  2. Wait up to the configured fetch timeout for the background worker to
//     enqueue something.
//  3. Generate synchronously on the calling goroutine. The result bypasses
//     the cache entirely; errors propagate to the caller.
func (s *QuestionService) Next(ctx context.Context) (*domain.Question, error) {
	if q, found := s.cache.TryDequeueNow(); found {
		return q, nil
	}

	s.emit(ctx, events.EventCacheMiss, "")
	s.logger.DebugContext(ctx, "cache empty, waiting for replenishment",
		"fetch_timeout", s.fetchTimeout)

	if q, found := s.cache.DequeueWait(ctx, s.fetchTimeout); found {
		return q, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventFallbackGeneration, "")
	s.logger.InfoContext(ctx, "fetch timeout elapsed, generating synchronously")

	q, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoQuestionAvailable, err)
	}

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrNoQuestionAvailable, generation.ErrInvalidResponse, err)
	}

	return q, nil
}

func (s *QuestionService) emit(ctx context.Context, eventType events.EventType, detail string) {
	event := events.NewCacheEvent(eventType, s.cache.Size(), detail)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.DebugContext(ctx, "event handler returned error",
			"error", err, "event_type", eventType)
	}
}
