package redact_test

import (
	"errors"
	"testing"

	"github.com/phrazzld/quizgen-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		mustNotLeak string
	}{
		{
			name:        "api key assignment",
			input:       "request failed: api_key=AIzaSyA1234567890abcdef",
			mustNotLeak: "AIzaSyA1234567890abcdef",
		},
		{
			name:        "key in query string",
			input:       "POST https://generativelanguage.googleapis.com/v1?key=secretvalue123 returned 429",
			mustNotLeak: "secretvalue123",
		},
		{
			name:        "bearer header",
			input:       "authorization: Bearer abcdef123456789",
			mustNotLeak: "abcdef123456789",
		},
		{
			name:        "unix path",
			input:       "open /home/deploy/secrets/gemini.key: permission denied",
			mustNotLeak: "/home/deploy/secrets",
		},
		{
			name:        "hostname",
			input:       "dial tcp: lookup generativelanguage.googleapis.com: no such host",
			mustNotLeak: "googleapis.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := redact.String(tc.input)
			assert.NotContains(t, result, tc.mustNotLeak)
			assert.Contains(t, result, "[REDACTED")
		})
	}
}

func TestStringPassesHarmlessText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.String(""))
	assert.Equal(t, "generation failed: empty response text",
		redact.String("generation failed: empty response text"))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.Error(nil))

	err := errors.New("client error: key=verysecretkey99")
	assert.NotContains(t, redact.Error(err), "verysecretkey99")
}
