// Package cache implements the bounded prefetch cache that hides question
// generation latency from request handlers.
//
// PrefetchCache is a fixed-capacity, concurrency-safe pool of ready-to-serve
// questions with exactly-once dequeue semantics. ReplenishWorker is the
// single background goroutine that keeps it topped up: when the cache falls
// below its low watermark the worker generates, validates, and enqueues
// questions until the cache is full again; above the watermark it sleeps
// between checks.
//
// All synchronization lives inside PrefetchCache; callers never take a lock.
package cache
