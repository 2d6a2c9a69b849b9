package service

import "errors"

// Common errors returned by the service layer.
var (
	// ErrSessionNotFound is returned when no session exists for the given
	// ID, either because it never existed or because it expired.
	ErrSessionNotFound = errors.New("quiz session not found")

	// ErrNoQuestionAvailable is returned when neither the cache nor the
	// fallback generation path could produce a question for the caller.
	ErrNoQuestionAvailable = errors.New("no question could be produced")
)
