package cache

import (
	"context"
	"errors"
	"time"

	"github.com/phrazzld/quizgen-api/internal/domain"
)

// ErrInvalidCapacity is returned when a cache is created with a
// non-positive capacity.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// PrefetchCache is a bounded, concurrency-safe pool of ready-to-serve
// questions. It is built on a buffered channel, which gives the three
// guarantees the callers rely on without any explicit locking:
//
//   - the capacity bound can never be exceeded, even under concurrent
//     producers (the channel send either succeeds within the buffer or
//     doesn't happen at all);
//   - a dequeued question is delivered to exactly one caller;
//   - a waiting consumer wakes promptly when a producer enqueues.
type PrefetchCache struct {
	questions chan *domain.Question
	capacity  int
}

// NewPrefetchCache creates a cache with the given fixed capacity.
func NewPrefetchCache(capacity int) (*PrefetchCache, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &PrefetchCache{
		questions: make(chan *domain.Question, capacity),
		capacity:  capacity,
	}, nil
}

// TryEnqueue inserts the question if a slot is free and reports whether the
// insertion happened. Never blocks. A false return means the cache was full
// at the instant of the attempt; callers treat that as a benign race and
// drop the question.
func (c *PrefetchCache) TryEnqueue(q *domain.Question) bool {
	select {
	case c.questions <- q:
		return true
	default:
		return false
	}
}

// TryDequeueNow removes and returns one question if any is available.
// Never blocks.
func (c *PrefetchCache) TryDequeueNow() (*domain.Question, bool) {
	select {
	case q := <-c.questions:
		return q, true
	default:
		return nil, false
	}
}

// DequeueWait blocks until a question is available, the timeout elapses, or
// the context is cancelled, whichever comes first. It reports whether a
// question was obtained.
func (c *PrefetchCache) DequeueWait(ctx context.Context, timeout time.Duration) (*domain.Question, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case q := <-c.questions:
		return q, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Size returns the current number of cached questions. The value is a
// snapshot used as a replenishment hint; TryEnqueue's own bound check is
// what actually enforces capacity.
func (c *PrefetchCache) Size() int {
	return len(c.questions)
}

// Capacity returns the fixed capacity the cache was created with.
func (c *PrefetchCache) Capacity() int {
	return c.capacity
}
