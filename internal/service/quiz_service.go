package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/phrazzld/quizgen-api/internal/domain"
)

// QuestionProvider supplies the next question for a session. Satisfied by
// QuestionService; tests substitute fakes.
type QuestionProvider interface {
	Next(ctx context.Context) (*domain.Question, error)
}

// AnswerResult is the outcome of grading one submitted answer.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Finished      bool

	// NextQuestion is set when the session continues.
	NextQuestion *domain.Question

	// Results is set when this answer finished the session.
	Results *domain.Results
}

// sessionEntry wraps a session with its own lock so concurrent requests for
// the same session are serialized without a global lock.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.QuizSession
}

// QuizService manages anonymous quiz sessions. Session state lives in a
// bounded TTL store: abandoned sessions expire instead of accumulating, and
// the store evicts the least recently used session when full.
type QuizService struct {
	questions     QuestionProvider
	sessions      *expirable.LRU[uuid.UUID, *sessionEntry]
	sessionLength int
	logger        *slog.Logger
}

// NewQuizService creates a QuizService tracking at most maxSessions
// concurrent sessions, each expiring after ttl of inactivity.
func NewQuizService(
	questions QuestionProvider,
	sessionLength int,
	maxSessions int,
	ttl time.Duration,
	logger *slog.Logger,
) (*QuizService, error) {
	if questions == nil {
		return nil, errors.New("question provider cannot be nil")
	}
	if sessionLength <= 0 {
		return nil, errors.New("session length must be positive")
	}
	if maxSessions <= 0 {
		return nil, errors.New("max sessions must be positive")
	}
	if ttl <= 0 {
		return nil, errors.New("session TTL must be positive")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &QuizService{
		questions:     questions,
		sessions:      expirable.NewLRU[uuid.UUID, *sessionEntry](maxSessions, nil, ttl),
		sessionLength: sessionLength,
		logger:        logger.With("component", "quiz_service"),
	}, nil
}

// StartSession creates a new session and assigns its first question.
func (s *QuizService) StartSession(ctx context.Context) (*domain.QuizSession, error) {
	session, err := domain.NewQuizSession(s.sessionLength)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first question: %w", err)
	}

	if err := session.SetCurrent(question); err != nil {
		return nil, err
	}

	s.sessions.Add(session.ID, &sessionEntry{session: session})
	s.logger.InfoContext(ctx, "quiz session started",
		"session_id", session.ID,
		"session_length", s.sessionLength)

	return session, nil
}

// CurrentQuestion returns the question the session is waiting on,
// assigning a fresh one if needed (e.g. after a session was restored
// mid-quiz).
func (s *QuizService) CurrentQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.Finished() {
		return nil, domain.ErrSessionFinished
	}

	if entry.session.Current == nil {
		question, err := s.questions.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch question: %w", err)
		}
		if err := entry.session.SetCurrent(question); err != nil {
			return nil, err
		}
	}

	return entry.session.Current, nil
}

// SubmitAnswer grades the submitted answer for the session's current
// question. When the session continues, the next question is fetched and
// returned; when this was the final question, the results are returned
// instead.
func (s *QuizService) SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (*AnswerResult, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if session.Current == nil && !session.Finished() {
		return nil, domain.ErrNoCurrentQuestion
	}

	current := session.Current
	correct, err := session.RecordAnswer(answer)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: current.CorrectAnswer,
		Explanation:   current.Explanation,
		Finished:      session.Finished(),
	}

	if session.Finished() {
		results, err := session.Results()
		if err != nil {
			return nil, err
		}
		// The session stays in the store until its TTL expires so the
		// results endpoint can re-serve the summary on refresh.
		result.Results = results
		s.logger.InfoContext(ctx, "quiz session finished",
			"session_id", id,
			"score", results.Score,
			"total", results.Total)
		return result, nil
	}

	next, err := s.questions.Next(ctx)
	if err != nil {
		// The answer is already recorded; surface the fetch failure and
		// let the client retry via CurrentQuestion.
		return nil, fmt.Errorf("failed to fetch next question: %w", err)
	}
	if err := session.SetCurrent(next); err != nil {
		return nil, err
	}
	result.NextQuestion = next

	return result, nil
}

// Results returns the summary of a finished session, allowing the results
// view to be refreshed until the session's TTL expires. Returns
// domain.ErrSessionNotFinished while questions remain.
func (s *QuizService) Results(_ context.Context, id uuid.UUID) (*domain.Results, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.session.Results()
}
