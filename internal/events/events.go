package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of cache event that occurred.
type EventType string

// Cache event types emitted by the prefetch worker and the question service.
const (
	// EventQuestionCached fires when the worker enqueues a validated question.
	EventQuestionCached EventType = "question_cached"

	// EventGenerationFailed fires when a background generation attempt
	// errors or produces an invalid question. Never fired for the fallback
	// path, whose errors propagate to the caller instead.
	EventGenerationFailed EventType = "generation_failed"

	// EventCapacityRace fires when the worker generated a question but the
	// cache was filled by the time it tried to enqueue. The question is
	// discarded; this is expected behavior, not an error.
	EventCapacityRace EventType = "capacity_race"

	// EventCacheMiss fires when a consumer found the cache empty and had to
	// wait.
	EventCacheMiss EventType = "cache_miss"

	// EventFallbackGeneration fires when a consumer's wait timed out and it
	// generated a question synchronously on the request path.
	EventFallbackGeneration EventType = "fallback_generation"
)

// CacheEvent describes one observability event from the prefetch machinery.
type CacheEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what happened
	Type EventType `json:"type"`

	// CacheSize is the cache occupancy observed when the event was created
	CacheSize int `json:"cache_size"`

	// Detail carries an optional human-readable reason (e.g. the
	// generation error text). Informational only.
	Detail string `json:"detail,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewCacheEvent creates a CacheEvent of the given type.
func NewCacheEvent(eventType EventType, cacheSize int, detail string) *CacheEvent {
	return &CacheEvent{
		ID:        uuid.New(),
		Type:      eventType,
		CacheSize: cacheSize,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *CacheEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the cache machinery to publish events without direct knowledge
// of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *CacheEvent) error
}
