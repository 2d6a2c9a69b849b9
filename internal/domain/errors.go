package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrSessionFinished is returned when an answer is submitted to a
	// session that has already completed all of its questions.
	ErrSessionFinished = errors.New("quiz session already finished")

	// ErrSessionNotFinished is returned when results are requested for a
	// session that still has questions outstanding.
	ErrSessionNotFinished = errors.New("quiz session not finished")

	// ErrNoCurrentQuestion is returned when an answer is submitted but the
	// session has no question assigned to answer.
	ErrNoCurrentQuestion = errors.New("no current question in session")
)
