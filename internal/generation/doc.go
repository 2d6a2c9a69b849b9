// Package generation defines the boundary between the application core and
// the external text-generation service that produces quiz questions.
//
// The Generator interface is the only way the rest of the application talks
// to an LLM; the cache worker, the fallback path in the question service,
// and the tests all consume it. Concrete implementations live under
// internal/platform (currently Gemini).
package generation
