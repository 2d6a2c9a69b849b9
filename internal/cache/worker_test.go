package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/quizgen-api/internal/domain"
	"github.com/phrazzld/quizgen-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeGenerator is a call-counting generation.Generator for tests.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context) (*domain.Question, error)
}

func (g *fakeGenerator) Generate(ctx context.Context) (*domain.Question, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.generate(ctx)
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recordingEmitter collects every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.CacheEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.CacheEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) countOf(eventType events.EventType) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, event := range e.events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}

func testWorkerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func alwaysValidGenerator() *fakeGenerator {
	return &fakeGenerator{
		generate: func(ctx context.Context) (*domain.Question, error) {
			q, err := domain.NewQuestion("q", "code", []string{"10", "20"}, "10", "because")
			if err != nil {
				return nil, err
			}
			return q, nil
		},
	}
}

func fastWorkerConfig(lowWatermark int) ReplenishWorkerConfig {
	return ReplenishWorkerConfig{
		LowWatermark:       lowWatermark,
		PollInterval:       5 * time.Millisecond,
		FailureBackoffBase: time.Millisecond,
		FailureBackoffMax:  10 * time.Millisecond,
	}
}

func TestNewReplenishWorkerValidation(t *testing.T) {
	t.Parallel()

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)
	gen := alwaysValidGenerator()
	emitter := &recordingEmitter{}
	logger := testWorkerLogger()

	t.Run("nil dependencies rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewReplenishWorker(nil, gen, emitter, fastWorkerConfig(1), logger)
		assert.Error(t, err)

		_, err = NewReplenishWorker(c, nil, emitter, fastWorkerConfig(1), logger)
		assert.Error(t, err)

		_, err = NewReplenishWorker(c, gen, nil, fastWorkerConfig(1), logger)
		assert.Error(t, err)

		_, err = NewReplenishWorker(c, gen, emitter, fastWorkerConfig(1), nil)
		assert.Error(t, err)
	})

	t.Run("watermark must be below capacity", func(t *testing.T) {
		t.Parallel()

		_, err := NewReplenishWorker(c, gen, emitter, fastWorkerConfig(3), logger)
		assert.Error(t, err)

		_, err = NewReplenishWorker(c, gen, emitter, fastWorkerConfig(-1), logger)
		assert.Error(t, err)
	})
}

// TestWorkerFillsCacheToCapacity checks watermark liveness: starting empty
// with a functioning generator, the worker brings the cache to capacity.
func TestWorkerFillsCacheToCapacity(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)
	gen := alwaysValidGenerator()
	emitter := &recordingEmitter{}

	worker, err := NewReplenishWorker(c, gen, emitter, fastWorkerConfig(1), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	defer worker.Stop()

	require.Eventually(t, func() bool { return c.Size() == 3 },
		2*time.Second, time.Millisecond, "worker should fill the cache to capacity")
	assert.GreaterOrEqual(t, emitter.countOf(events.EventQuestionCached), 3)
}

// TestWorkerIdlesAboveWatermark verifies the hysteresis: a cache sitting at
// or above the watermark triggers no generation at all.
func TestWorkerIdlesAboveWatermark(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.True(t, c.TryEnqueue(mustQuestion(t)))
	}

	gen := alwaysValidGenerator()
	worker, err := NewReplenishWorker(c, gen, &recordingEmitter{}, fastWorkerConfig(2), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	time.Sleep(50 * time.Millisecond)
	worker.Stop()

	assert.Zero(t, gen.callCount(), "worker must not generate while at or above the watermark")
	assert.Equal(t, 2, c.Size())
}

// TestWorkerRefillsAfterDrain drains a full cache below the watermark and
// checks the worker tops it back up.
func TestWorkerRefillsAfterDrain(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)

	worker, err := NewReplenishWorker(c, alwaysValidGenerator(), &recordingEmitter{}, fastWorkerConfig(1), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	defer worker.Stop()

	require.Eventually(t, func() bool { return c.Size() == 3 }, 2*time.Second, time.Millisecond)

	for i := 0; i < 3; i++ {
		_, found := c.TryDequeueNow()
		require.True(t, found)
	}

	require.Eventually(t, func() bool { return c.Size() == 3 },
		2*time.Second, time.Millisecond, "worker should refill after a drain below the watermark")
}

// TestWorkerNeverCachesInvalidQuestions feeds the worker structurally
// incomplete questions and verifies none reach the cache, however often the
// generator is retried.
func TestWorkerNeverCachesInvalidQuestions(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)

	// Bypasses NewQuestion to simulate a generator handing back a question
	// whose correct answer is not among the options.
	gen := &fakeGenerator{
		generate: func(ctx context.Context) (*domain.Question, error) {
			return &domain.Question{
				Text:          "q",
				Code:          "code",
				Answers:       []string{"1", "2"},
				CorrectAnswer: "missing",
			}, nil
		},
	}
	emitter := &recordingEmitter{}

	worker, err := NewReplenishWorker(c, gen, emitter, fastWorkerConfig(1), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()

	require.Eventually(t, func() bool { return gen.callCount() >= 5 },
		2*time.Second, time.Millisecond, "worker should keep retrying")
	worker.Stop()

	assert.Equal(t, 0, c.Size(), "invalid questions must never be cached")
	assert.GreaterOrEqual(t, emitter.countOf(events.EventGenerationFailed), 5)
	assert.Zero(t, emitter.countOf(events.EventQuestionCached))
}

// TestWorkerBacksOffOnConsecutiveFailures checks the failure loop is rate
// limited: with a 10ms max backoff, a generator that always fails must not
// be called an unbounded number of times in a short window.
func TestWorkerBacksOffOnConsecutiveFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)

	gen := &fakeGenerator{
		generate: func(ctx context.Context) (*domain.Question, error) {
			return nil, errors.New("remote unavailable")
		},
	}

	config := fastWorkerConfig(1)
	config.FailureBackoffBase = 10 * time.Millisecond
	config.FailureBackoffMax = 40 * time.Millisecond

	worker, err := NewReplenishWorker(c, gen, &recordingEmitter{}, config, testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	time.Sleep(120 * time.Millisecond)
	worker.Stop()

	// With a 10ms base doubling to 40ms, 120ms admits at most ~8 attempts.
	// A tight loop would reach thousands.
	assert.LessOrEqual(t, gen.callCount(), 10, "failure loop must back off")
	assert.GreaterOrEqual(t, gen.callCount(), 2, "worker should keep retrying")
}

// TestWorkerStopCancelsInFlightGeneration verifies Stop does not hang on a
// generator blocked in a slow call.
func TestWorkerStopCancelsInFlightGeneration(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(3)
	require.NoError(t, err)

	started := make(chan struct{}, 1)
	gen := &fakeGenerator{
		generate: func(ctx context.Context) (*domain.Question, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	worker, err := NewReplenishWorker(c, gen, &recordingEmitter{}, fastWorkerConfig(1), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	<-started

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return; in-flight generation was not cancelled")
	}
}

// TestWorkerStartAndStopIdempotent double-starts and double-stops.
func TestWorkerStartAndStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := NewPrefetchCache(2)
	require.NoError(t, err)

	worker, err := NewReplenishWorker(c, alwaysValidGenerator(), &recordingEmitter{}, fastWorkerConfig(1), testWorkerLogger())
	require.NoError(t, err)

	worker.Start()
	worker.Start()
	worker.Stop()
	worker.Stop()
}

func mustQuestion(t *testing.T) *domain.Question {
	t.Helper()

	q, err := domain.NewQuestion("q", "code", []string{"a", "b"}, "a", "")
	require.NoError(t, err)
	return q
}
