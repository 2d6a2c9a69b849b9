package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/quizgen-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceProvider hands out questions with distinct correct answers so
// tests can grade deterministically.
type sequenceProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *sequenceProvider) Next(_ context.Context) (*domain.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.calls++
	correct := fmt.Sprintf("answer-%d", p.calls)
	return domain.NewQuestion(
		fmt.Sprintf("question %d", p.calls),
		"Escribir x",
		[]string{correct, "wrong"},
		correct,
		"explanation",
	)
}

func newQuizService(t *testing.T, provider QuestionProvider, length int) *QuizService {
	t.Helper()

	svc, err := NewQuizService(provider, length, 16, time.Minute, testServiceLogger())
	require.NoError(t, err)
	return svc
}

func TestQuizServiceStartSession(t *testing.T) {
	t.Parallel()

	t.Run("assigns first question", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 5)

		session, err := svc.StartSession(context.Background())

		require.NoError(t, err)
		require.NotNil(t, session.Current)
		assert.Equal(t, "question 1", session.Current.Text)
		assert.Equal(t, 0, session.Answered)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{err: errors.New("generator down")}, 5)

		session, err := svc.StartSession(context.Background())

		assert.Nil(t, session)
		assert.ErrorContains(t, err, "generator down")
	})
}

func TestQuizServiceSubmitAnswer(t *testing.T) {
	t.Parallel()

	t.Run("correct answer advances to next question", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		result, err := svc.SubmitAnswer(context.Background(), session.ID, "answer-1")

		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, "answer-1", result.CorrectAnswer)
		assert.Equal(t, "explanation", result.Explanation)
		assert.False(t, result.Finished)
		require.NotNil(t, result.NextQuestion)
		assert.Equal(t, "question 2", result.NextQuestion.Text)
		assert.Nil(t, result.Results)
	})

	t.Run("final answer finishes session with results", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(context.Background(), session.ID, "answer-1")
		require.NoError(t, err)

		result, err := svc.SubmitAnswer(context.Background(), session.ID, "wrong")

		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.True(t, result.Finished)
		assert.Nil(t, result.NextQuestion)
		require.NotNil(t, result.Results)
		assert.Equal(t, 1, result.Results.Score)
		assert.Equal(t, 2, result.Results.Total)
		require.Len(t, result.Results.Mistakes, 1)
		assert.Equal(t, "wrong", result.Results.Mistakes[0].UserAnswer)
	})

	t.Run("answer after finish is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 1)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(context.Background(), session.ID, "answer-1")
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(context.Background(), session.ID, "answer-1")
		assert.ErrorIs(t, err, domain.ErrSessionFinished)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)

		_, err := svc.SubmitAnswer(context.Background(), uuid.New(), "x")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestQuizServiceCurrentQuestion(t *testing.T) {
	t.Parallel()

	t.Run("returns the pending question", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		q, err := svc.CurrentQuestion(context.Background(), session.ID)

		require.NoError(t, err)
		assert.Equal(t, "question 1", q.Text)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)

		_, err := svc.CurrentQuestion(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestQuizServiceResults(t *testing.T) {
	t.Parallel()

	t.Run("unfinished session has no results", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 2)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		_, err = svc.Results(context.Background(), session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFinished)
	})

	t.Run("finished session results are re-servable", func(t *testing.T) {
		t.Parallel()

		svc := newQuizService(t, &sequenceProvider{}, 1)
		session, err := svc.StartSession(context.Background())
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(context.Background(), session.ID, "answer-1")
		require.NoError(t, err)

		results, err := svc.Results(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, results.Score)

		// A refresh serves the same summary again.
		again, err := svc.Results(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, results.Score, again.Score)
	})
}

func TestQuizServiceSessionExpiry(t *testing.T) {
	t.Parallel()

	svc, err := NewQuizService(&sequenceProvider{}, 2, 16, 20*time.Millisecond, testServiceLogger())
	require.NoError(t, err)

	session, err := svc.StartSession(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := svc.CurrentQuestion(context.Background(), session.ID)
		return errors.Is(err, ErrSessionNotFound)
	}, 2*time.Second, 10*time.Millisecond, "session should expire after its TTL")
}
