// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/quizgen-api/internal/api/shared"
	"github.com/phrazzld/quizgen-api/internal/platform/logger"
	"github.com/phrazzld/quizgen-api/internal/redact"
	"github.com/phrazzld/quizgen-api/internal/service"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	quizService *service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(quizService *service.QuizService, log *slog.Logger) *QuizHandler {
	if quizService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quiz service cannot be nil for QuizHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		quizService: quizService,
		logger:      log.With(slog.String("component", "quiz_handler")),
	}
}

// StartSession handles POST /quiz/sessions requests.
// It creates a new quiz session and returns its first question.
func (h *QuizHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, err := h.quizService.StartSession(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start quiz session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := StartSessionResponse{
		SessionID: session.ID.String(),
		Length:    session.Length,
		Question:  questionToResponse(session.Current),
	}

	log.Debug("quiz session created", slog.String("session_id", session.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// GetCurrentQuestion handles GET /quiz/sessions/{id}/question requests.
// It returns the question the session is currently waiting on.
func (h *QuizHandler) GetCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.sessionIDFromPath(w, r)
	if !ok {
		return
	}

	question, err := h.quizService.CurrentQuestion(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get current question"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("serving current question", slog.String("session_id", sessionID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, questionToResponse(question))
}

// SubmitAnswer handles POST /quiz/sessions/{id}/answer requests.
// It grades the submitted answer and returns the outcome together with the
// next question, or the final results when the session is complete.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.sessionIDFromPath(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", sessionID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", sessionID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.quizService.SubmitAnswer(r.Context(), sessionID, req.Answer)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("answer graded",
		slog.String("session_id", sessionID.String()),
		slog.Bool("correct", result.Correct),
		slog.Bool("finished", result.Finished))
	shared.RespondWithJSON(w, r, http.StatusOK, answerToResponse(result))
}

// GetResults handles GET /quiz/sessions/{id}/results requests.
// It returns the summary of a finished session.
func (h *QuizHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.sessionIDFromPath(w, r)
	if !ok {
		return
	}

	results, err := h.quizService.Results(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get session results"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("serving session results",
		slog.String("session_id", sessionID.String()),
		slog.Int("score", results.Score))
	shared.RespondWithJSON(w, r, http.StatusOK, resultsToResponse(results))
}

// sessionIDFromPath extracts and parses the session ID URL parameter,
// writing the error response itself when the ID is missing or malformed.
func (h *QuizHandler) sessionIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("session ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid session ID format", slog.String("session_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}

	return sessionID, true
}
