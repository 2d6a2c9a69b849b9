package generation

import (
	"context"

	"github.com/phrazzld/quizgen-api/internal/domain"
)

// Generator defines the interface for producing quiz questions.
// This interface serves as a boundary between the application core and
// external AI/LLM services. Implementations may be slow (multi-second
// network round trips) and must be safe to call concurrently: the cache
// replenishment worker and any number of fallback paths may invoke it at
// the same time.
type Generator interface {
	// Generate produces one fully validated quiz question.
	//
	// Returns a domain.Question that satisfies domain validation, or an
	// error from the taxonomy in errors.go. Callers distinguish transport
	// failures (ErrGenerationFailed, ErrTransientFailure) from malformed
	// output (ErrInvalidResponse) with errors.Is.
	Generate(ctx context.Context) (*domain.Question, error)
}
