// Package service contains the application services sitting between the
// HTTP handlers and the domain.
//
// QuestionService is the sole consumer-facing entry point into the prefetch
// machinery: it drains the cache when possible, waits briefly when not, and
// only pays the generation latency on the request path as a last resort.
// QuizService manages anonymous quiz sessions, grading answers and keeping
// per-session state in a bounded TTL store.
package service
