// Package gemini implements the generation.Generator interface using
// Google's Gemini API.
//
// The generator sends a fixed exercise-generation prompt, retries transient
// API failures with exponential backoff and jitter, and normalizes the
// model's output (Markdown fence stripping, tolerant answer-list decoding)
// into a validated domain.Question.
package gemini
