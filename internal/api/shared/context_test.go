package shared_test

import (
	"context"
	"testing"

	"github.com/phrazzld/quizgen-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get round trip", func(t *testing.T) {
		t.Parallel()

		ctx := shared.SetTraceID(context.Background())
		traceID := shared.GetTraceID(ctx)

		assert.Len(t, traceID, shared.TraceIDLength*2)
	})

	t.Run("missing trace ID is empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, shared.GetTraceID(context.Background()))
	})

	t.Run("trace IDs are unique", func(t *testing.T) {
		t.Parallel()

		a := shared.GetTraceID(shared.SetTraceID(context.Background()))
		b := shared.GetTraceID(shared.SetTraceID(context.Background()))

		assert.NotEqual(t, a, b)
	})
}
