package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/quizgen-api/internal/events"
	"github.com/phrazzld/quizgen-api/internal/generation"
)

// ReplenishWorkerConfig holds configuration for the replenishment worker.
type ReplenishWorkerConfig struct {
	// LowWatermark is the cache size below which the worker starts a
	// refill burst that tops the cache back up to capacity. The gap
	// between watermark and capacity gives hysteresis: the worker does
	// not chase every single consumption. Must satisfy
	// 0 <= LowWatermark < cache capacity.
	LowWatermark int

	// PollInterval is how long the worker sleeps between size checks while
	// the cache is at or above the watermark.
	PollInterval time.Duration

	// FailureBackoffBase is the first delay after a failed generation or
	// validation. Doubles per consecutive failure up to FailureBackoffMax
	// and resets on success. Keeps a persistently failing generator from
	// spinning in a tight loop; successful generations below the watermark
	// are never delayed.
	FailureBackoffBase time.Duration

	// FailureBackoffMax caps the failure backoff.
	FailureBackoffMax time.Duration
}

// DefaultReplenishWorkerConfig returns a ReplenishWorkerConfig with
// reasonable defaults.
func DefaultReplenishWorkerConfig() ReplenishWorkerConfig {
	return ReplenishWorkerConfig{
		LowWatermark:       10,
		PollInterval:       2 * time.Second,
		FailureBackoffBase: 250 * time.Millisecond,
		FailureBackoffMax:  10 * time.Second,
	}
}

// ReplenishWorker is the single long-lived background goroutine that keeps
// the prefetch cache topped up. It owns its own lifecycle: Start launches
// the loop, Stop cancels it (including any in-flight generation) and waits
// for it to exit.
//
// Generation and validation failures are consumed by the worker, not
// propagated: it logs, emits an event, backs off, and tries again. Its only
// externally visible effect is cache occupancy over time.
type ReplenishWorker struct {
	cache      *PrefetchCache
	generator  generation.Generator
	emitter    events.EventEmitter
	config     ReplenishWorkerConfig
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once
	started    bool
}

// NewReplenishWorker creates a worker replenishing the given cache.
func NewReplenishWorker(
	c *PrefetchCache,
	generator generation.Generator,
	emitter events.EventEmitter,
	config ReplenishWorkerConfig,
	logger *slog.Logger,
) (*ReplenishWorker, error) {
	if c == nil {
		return nil, errors.New("cache cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if config.LowWatermark < 0 || config.LowWatermark >= c.Capacity() {
		return nil, fmt.Errorf("low watermark %d must be in [0, capacity %d)",
			config.LowWatermark, c.Capacity())
	}
	if config.PollInterval <= 0 {
		return nil, errors.New("poll interval must be positive")
	}
	if config.FailureBackoffBase <= 0 {
		config.FailureBackoffBase = DefaultReplenishWorkerConfig().FailureBackoffBase
	}
	if config.FailureBackoffMax < config.FailureBackoffBase {
		config.FailureBackoffMax = DefaultReplenishWorkerConfig().FailureBackoffMax
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ReplenishWorker{
		cache:      c,
		generator:  generator,
		emitter:    emitter,
		config:     config,
		logger:     logger.With("component", "replenish_worker"),
		ctx:        ctx,
		cancelFunc: cancel,
	}, nil
}

// Start launches the replenishment loop. Calling Start more than once is a
// no-op after the first call.
func (w *ReplenishWorker) Start() {
	w.startOnce.Do(func() {
		w.started = true
		w.wg.Add(1)
		go w.run()
	})
}

// Stop cancels the loop (and any in-flight generation call) and blocks
// until the goroutine has exited. Safe to call multiple times.
func (w *ReplenishWorker) Stop() {
	w.stopOnce.Do(func() {
		w.cancelFunc()
		if w.started {
			w.wg.Wait()
		}
	})
}

// run is the replenishment loop.
func (w *ReplenishWorker) run() {
	defer w.wg.Done()

	w.logger.Debug("starting replenish worker",
		"capacity", w.cache.Capacity(),
		"low_watermark", w.config.LowWatermark,
		"poll_interval", w.config.PollInterval)

	consecutiveFailures := 0
	refilling := false

	for {
		if w.ctx.Err() != nil {
			w.logger.Debug("stopping replenish worker")
			return
		}

		size := w.cache.Size()
		switch {
		case refilling && size >= w.cache.Capacity():
			refilling = false
			continue
		case !refilling && size >= w.config.LowWatermark:
			if !w.sleep(w.config.PollInterval) {
				return
			}
			continue
		case !refilling:
			// Dropped below the watermark: top the cache back up to
			// capacity before sleeping again.
			refilling = true
		}

		enqueued, err := w.replenishOne()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue // loop exits on next iteration
			}

			consecutiveFailures++
			w.emit(events.EventGenerationFailed, err.Error())
			w.logger.Warn("question generation failed",
				"error", err,
				"consecutive_failures", consecutiveFailures)

			if !w.sleep(w.failureBackoff(consecutiveFailures)) {
				return
			}
			continue
		}

		// Success path: no artificial delay while below capacity.
		consecutiveFailures = 0
		if !enqueued {
			// Lost the race for the last slot; the cache is full, so the
			// burst is over.
			refilling = false
		}
	}
}

// replenishOne generates, validates, and enqueues a single question.
// Reports whether the question made it into the cache.
func (w *ReplenishWorker) replenishOne() (bool, error) {
	question, err := w.generator.Generate(w.ctx)
	if err != nil {
		return false, fmt.Errorf("generate: %w", err)
	}

	// The generator contract says the question is already validated, but
	// the cache only ever holds structurally complete questions, so the
	// invariant is re-checked at the boundary.
	if err := question.Validate(); err != nil {
		return false, fmt.Errorf("validate: %w", err)
	}

	if !w.cache.TryEnqueue(question) {
		// The last slot was filled first. Drop the question.
		w.emit(events.EventCapacityRace, "")
		w.logger.Debug("cache filled concurrently, discarding question")
		return false, nil
	}

	w.emit(events.EventQuestionCached, "")
	return true, nil
}

// failureBackoff returns the bounded exponential delay for the given
// consecutive failure count (1-based).
func (w *ReplenishWorker) failureBackoff(failures int) time.Duration {
	delay := w.config.FailureBackoffBase
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= w.config.FailureBackoffMax {
			return w.config.FailureBackoffMax
		}
	}
	return delay
}

// sleep waits for d or until the worker is stopped. Reports false when the
// worker should exit.
func (w *ReplenishWorker) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.ctx.Done():
		return false
	}
}

func (w *ReplenishWorker) emit(eventType events.EventType, detail string) {
	event := events.NewCacheEvent(eventType, w.cache.Size(), detail)
	if err := w.emitter.EmitEvent(w.ctx, event); err != nil {
		w.logger.Debug("event handler returned error", "error", err, "event_type", eventType)
	}
}
