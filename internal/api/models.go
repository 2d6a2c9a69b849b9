package api

import (
	"github.com/phrazzld/quizgen-api/internal/domain"
	"github.com/phrazzld/quizgen-api/internal/service"
)

// Common request/response structures

// QuestionResponse is the client view of a question. The correct answer and
// explanation are deliberately absent; they are revealed only in the answer
// response after grading.
type QuestionResponse struct {
	Question string   `json:"question"`
	Code     string   `json:"code"`
	Answers  []string `json:"answers"`
}

// StartSessionResponse defines the successful response for the session
// creation endpoint.
type StartSessionResponse struct {
	SessionID string           `json:"session_id"`
	Length    int              `json:"length"`
	Question  QuestionResponse `json:"question"`
}

// SubmitAnswerRequest defines the payload for the answer submission endpoint.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse reveals the grading outcome and, depending on
// progress, either the next question or the final results.
type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Finished      bool   `json:"finished"`

	NextQuestion *QuestionResponse `json:"next_question,omitempty"`
	Results      *ResultsResponse  `json:"results,omitempty"`
}

// MistakeResponse describes one incorrectly answered question in the
// results summary.
type MistakeResponse struct {
	Question      string   `json:"question"`
	Code          string   `json:"code"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	UserAnswer    string   `json:"user_answer"`
}

// ResultsResponse defines the summary returned for a finished session.
type ResultsResponse struct {
	Score          int               `json:"score"`
	Total          int               `json:"total"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
	Mistakes       []MistakeResponse `json:"mistakes"`
}

// questionToResponse converts a domain.Question to its client view.
func questionToResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		Question: q.Text,
		Code:     q.Code,
		Answers:  q.Answers,
	}
}

// resultsToResponse converts a domain.Results to a ResultsResponse.
func resultsToResponse(results *domain.Results) *ResultsResponse {
	mistakes := make([]MistakeResponse, 0, len(results.Mistakes))
	for _, m := range results.Mistakes {
		mistakes = append(mistakes, MistakeResponse{
			Question:      m.Question,
			Code:          m.Code,
			Answers:       m.Answers,
			CorrectAnswer: m.CorrectAnswer,
			Explanation:   m.Explanation,
			UserAnswer:    m.UserAnswer,
		})
	}

	return &ResultsResponse{
		Score:          results.Score,
		Total:          results.Total,
		ElapsedSeconds: results.ElapsedSeconds,
		Mistakes:       mistakes,
	}
}

// answerToResponse converts a service.AnswerResult to a SubmitAnswerResponse.
func answerToResponse(result *service.AnswerResult) SubmitAnswerResponse {
	response := SubmitAnswerResponse{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Explanation:   result.Explanation,
		Finished:      result.Finished,
	}

	if result.NextQuestion != nil {
		next := questionToResponse(result.NextQuestion)
		response.NextQuestion = &next
	}

	if result.Results != nil {
		response.Results = resultsToResponse(result.Results)
	}

	return response
}
