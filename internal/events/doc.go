// Package events provides a minimal in-process event bus for cache
// observability signals: questions cached, generation failures, capacity
// races, cache misses, and fallback generations.
//
// The prefetch worker and the question service publish events through the
// EventEmitter interface without knowing who listens. The default handler
// just logs, which is all the service needs today; a metrics handler can be
// registered alongside it without touching the publishers.
package events
