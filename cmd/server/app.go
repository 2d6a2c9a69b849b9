package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quizgen-api/internal/cache"
	"github.com/phrazzld/quizgen-api/internal/config"
	"github.com/phrazzld/quizgen-api/internal/events"
	"github.com/phrazzld/quizgen-api/internal/platform/gemini"
	"github.com/phrazzld/quizgen-api/internal/platform/logger"
	"github.com/phrazzld/quizgen-api/internal/service"
)

// application holds the wired-up dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	questionCache   *cache.PrefetchCache
	replenishWorker *cache.ReplenishWorker
	quizService     *service.QuizService
}

// newApplication loads configuration and builds the full dependency graph:
// logger, Gemini generator, prefetch cache, replenishment worker, and the
// quiz services. The worker is created but not started; the caller owns its
// lifecycle.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"cache_capacity", cfg.Quiz.CacheCapacity,
		"low_watermark", cfg.Quiz.LowWatermark)

	generator, err := gemini.NewGeminiGenerator(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create question generator: %w", err)
	}

	questionCache, err := cache.NewPrefetchCache(cfg.Quiz.CacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create prefetch cache: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewLoggingHandler(log))

	worker, err := cache.NewReplenishWorker(
		questionCache,
		generator,
		emitter,
		cache.ReplenishWorkerConfig{
			LowWatermark: cfg.Quiz.LowWatermark,
			PollInterval: cfg.Quiz.PollInterval,
		},
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create replenish worker: %w", err)
	}

	questionService, err := service.NewQuestionService(
		questionCache,
		generator,
		emitter,
		cfg.Quiz.FetchTimeout,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create question service: %w", err)
	}

	quizService, err := service.NewQuizService(
		questionService,
		cfg.Quiz.SessionLength,
		cfg.Quiz.MaxSessions,
		cfg.Quiz.SessionTTL,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          log,
		questionCache:   questionCache,
		replenishWorker: worker,
		quizService:     quizService,
	}, nil
}

// cleanup stops the background worker, waiting for any in-flight generation
// to be cancelled.
func (app *application) cleanup() {
	app.logger.Info("stopping replenish worker")
	app.replenishWorker.Stop()
}
