package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session-specific validation errors
var (
	// ErrSessionLengthInvalid is returned when a session is created with a
	// non-positive question count.
	ErrSessionLengthInvalid = errors.New("session length must be positive")
)

// DefaultSessionLength is the number of questions in a standard quiz run.
const DefaultSessionLength = 5

// Mistake records a question the user answered incorrectly, kept so the
// results view can show what went wrong and why.
type Mistake struct {
	Question      string   `json:"question"`
	Code          string   `json:"code"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	UserAnswer    string   `json:"user_answer"`
}

// Results summarizes a finished quiz session.
type Results struct {
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Mistakes       []Mistake `json:"mistakes"`
}

// QuizSession tracks one anonymous user's progress through a fixed-length
// quiz: current question, score so far, and recorded mistakes.
//
// A session is not safe for concurrent use; the service layer serializes
// access per session.
type QuizSession struct {
	ID        uuid.UUID
	Length    int
	Score     int
	Answered  int
	StartedAt time.Time
	Current   *Question
	Mistakes  []Mistake
}

// NewQuizSession creates a session of the given length with a fresh ID and
// start timestamp. The first question is assigned separately via SetCurrent.
func NewQuizSession(length int) (*QuizSession, error) {
	if length <= 0 {
		return nil, ErrSessionLengthInvalid
	}

	return &QuizSession{
		ID:        uuid.New(),
		Length:    length,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Finished reports whether every question in the session has been answered.
func (s *QuizSession) Finished() bool {
	return s.Answered >= s.Length
}

// SetCurrent assigns the question the user is expected to answer next.
// Returns ErrSessionFinished if the session is already complete.
func (s *QuizSession) SetCurrent(q *Question) error {
	if s.Finished() {
		return ErrSessionFinished
	}

	s.Current = q
	return nil
}

// RecordAnswer grades the submitted answer against the current question,
// updates the score and mistake list, and clears the current question.
// Returns whether the answer was correct.
func (s *QuizSession) RecordAnswer(submitted string) (bool, error) {
	if s.Finished() {
		return false, ErrSessionFinished
	}

	if s.Current == nil {
		return false, ErrNoCurrentQuestion
	}

	question := s.Current
	correct := question.IsCorrect(submitted)

	s.Answered++
	if correct {
		s.Score++
	} else {
		s.Mistakes = append(s.Mistakes, Mistake{
			Question:      question.Text,
			Code:          question.Code,
			Answers:       question.Answers,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			UserAnswer:    submitted,
		})
	}

	s.Current = nil
	return correct, nil
}

// Results returns the final summary of a finished session.
// Returns ErrSessionNotFinished if questions remain.
func (s *QuizSession) Results() (*Results, error) {
	if !s.Finished() {
		return nil, ErrSessionNotFinished
	}

	return &Results{
		Score:          s.Score,
		Total:          s.Answered,
		ElapsedSeconds: int(time.Since(s.StartedAt).Seconds()),
		Mistakes:       s.Mistakes,
	}, nil
}
