package domain

import (
	"errors"
	"strings"
)

// Question-specific validation errors
var (
	// ErrQuestionTextEmpty is returned when a question has no prompt text.
	ErrQuestionTextEmpty = errors.New("question text cannot be empty")

	// ErrQuestionCodeEmpty is returned when a question has no code fragment.
	ErrQuestionCodeEmpty = errors.New("question code fragment cannot be empty")

	// ErrQuestionAnswersEmpty is returned when a question has no answer options.
	ErrQuestionAnswersEmpty = errors.New("question must have at least one answer option")

	// ErrQuestionAnswerBlank is returned when an answer option is empty or
	// contains only whitespace.
	ErrQuestionAnswerBlank = errors.New("answer option cannot be blank")

	// ErrCorrectAnswerMissing is returned when the designated correct answer
	// does not appear verbatim among the answer options.
	ErrCorrectAnswerMissing = errors.New("correct answer must match one of the answer options")
)

// Question represents a single-choice code-analysis exercise produced by the
// generator. The correct answer must be byte-for-byte equal to exactly one of
// the answer options; the session layer relies on that when grading.
type Question struct {
	Text          string   `json:"question"`
	Code          string   `json:"code"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// NewQuestion creates a Question from raw generator output and validates it.
// The answers slice is copied so the caller cannot mutate the question later.
// Returns an error if validation fails.
func NewQuestion(text, code string, answers []string, correctAnswer, explanation string) (*Question, error) {
	q := &Question{
		Text:          text,
		Code:          code,
		Answers:       append([]string(nil), answers...),
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks the Question invariants.
// Returns a sentinel error for the first failing field.
func (q *Question) Validate() error {
	if q.Text == "" {
		return ErrQuestionTextEmpty
	}

	if q.Code == "" {
		return ErrQuestionCodeEmpty
	}

	if len(q.Answers) == 0 {
		return ErrQuestionAnswersEmpty
	}

	found := false
	for _, answer := range q.Answers {
		if strings.TrimSpace(answer) == "" {
			return ErrQuestionAnswerBlank
		}
		// Case- and whitespace-sensitive match, same comparison the
		// grading path uses after trimming user input.
		if answer == q.CorrectAnswer {
			found = true
		}
	}

	if !found {
		return ErrCorrectAnswerMissing
	}

	return nil
}

// IsCorrect reports whether the submitted answer matches the correct one.
// The submission is trimmed before comparison because it arrives from user
// input; the stored options are compared as-is.
func (q *Question) IsCorrect(submitted string) bool {
	return strings.TrimSpace(submitted) == strings.TrimSpace(q.CorrectAnswer)
}
